// internal/publisher/publisher.go
package publisher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tamzrod/invt-mqtt-bridge/internal/poller"
	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
	"github.com/tamzrod/invt-mqtt-bridge/internal/status"
)

// Publisher pushes snapshots, discovery and availability to a Transport.
//
// Delivery-only:
// - no retries inside a call
// - a failed availability publish is re-asserted on the next cycle
// Not safe for concurrent use; the poll goroutine owns it.
type Publisher struct {
	plan      Plan
	transport Transport
	tracker   *status.Tracker
	now       func() time.Time

	// availability must be re-sent (boot or previous failure)
	needAvailability bool
}

func New(plan Plan, transport Transport) *Publisher {
	return &Publisher{
		plan:             plan,
		transport:        transport,
		tracker:          status.NewTracker(time.Now()),
		now:              time.Now,
		needAvailability: true,
	}
}

// Announce publishes the discovery config of every sensor in reg.
// A disabled plan makes it a no-op.
func (p *Publisher) Announce(reg *sensor.Registry) error {
	if !p.plan.Discovery {
		return nil
	}

	msgs, err := RenderDiscovery(reg, p.plan.Device, p.plan.Topics)
	if err != nil {
		return err
	}

	var errs []string
	for _, m := range msgs {
		if err := p.transport.Publish(m.Topic, p.plan.QoS, m.Retained, m.Payload); err != nil {
			errs = append(errs, fmt.Sprintf(
				"publisher: discovery topic=%s err=%v",
				m.Topic, err,
			))
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}

// Publish sends the snapshot to the state topic, then updates
// availability when health changed.
func (p *Publisher) Publish(snap poller.Snapshot) error {
	var errs []string

	// ------------------------------------------------------------
	// STATE
	// ------------------------------------------------------------

	payload, err := RenderSnapshot(snap)
	if err != nil {
		errs = append(errs, err.Error())
	} else if err := p.transport.Publish(p.plan.Topics.State, p.plan.QoS, false, payload); err != nil {
		errs = append(errs, fmt.Sprintf(
			"publisher: state topic=%s err=%v",
			p.plan.Topics.State, err,
		))
	}

	// ------------------------------------------------------------
	// AVAILABILITY
	// ------------------------------------------------------------

	changed := p.tracker.Observe(p.now(), len(snap.Readings), snap.Failed())
	if p.plan.Topics.Availability != "" && (changed || p.needAvailability) {
		if err := p.PublishAvailability(status.Encode(p.tracker.Snapshot())); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, " | "))
	}
	return nil
}

// PublishAvailability sends a retained online/offline payload.
func (p *Publisher) PublishAvailability(payload string) error {
	if p.plan.Topics.Availability == "" {
		return nil
	}

	err := p.transport.Publish(p.plan.Topics.Availability, p.plan.QoS, true, []byte(payload))
	p.needAvailability = err != nil
	if err != nil {
		return fmt.Errorf(
			"publisher: availability topic=%s err=%v",
			p.plan.Topics.Availability, err,
		)
	}
	return nil
}

// Status is the current device health as seen by the publisher.
func (p *Publisher) Status() status.Snapshot {
	return p.tracker.Snapshot()
}
