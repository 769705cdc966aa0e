// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/invt-mqtt-bridge/internal/register"
	"github.com/tamzrod/invt-mqtt-bridge/internal/sensor"
)

// Reader abstracts the single Modbus operation the poller needs (FC 3).
// On success it returns exactly qty words, high word first.
type Reader interface {
	ReadHoldingRegisters(unitID uint8, addr, qty uint16) ([]uint16, error)
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	UnitID   uint8
	Interval time.Duration
}

// Poller walks the sensor registry once per cycle.
type Poller struct {
	cfg      Config
	registry *sensor.Registry
	reader   Reader
	logger   log.FieldLogger
	now      func() time.Time
}

// New creates a poller with immutable config.
func New(cfg Config, registry *sensor.Registry, reader Reader) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if registry == nil || registry.Len() == 0 {
		return nil, errors.New("poller: registry required")
	}
	if reader == nil {
		return nil, errors.New("poller: reader required")
	}
	return &Poller{
		cfg:      cfg,
		registry: registry,
		reader:   reader,
		logger:   log.WithField("unit_id", cfg.UnitID),
		now:      time.Now,
	}, nil
}

// PollOnce performs exactly one poll cycle.
// Reads are sequential and a failed sensor never aborts the cycle:
// every registry id appears in the result.
func (p *Poller) PollOnce() Snapshot {
	start := p.now()
	descs := p.registry.Descriptors()

	snap := Snapshot{
		At:       start,
		Readings: make([]Reading, 0, len(descs)),
	}

	for _, d := range descs {
		r := Reading{ID: d.ID}

		v, err := p.readSensor(d)
		if err != nil {
			r.Err = err
			p.logger.WithError(err).WithField("sensor", d.ID).Debug("sensor read failed")
		} else {
			r.Value = v
		}

		snap.Readings = append(snap.Readings, r)
	}

	snap.Duration = p.now().Sub(start)
	return snap
}

func (p *Poller) readSensor(d sensor.Descriptor) (float64, error) {
	qty := d.Words()

	words, err := p.reader.ReadHoldingRegisters(p.cfg.UnitID, d.Address, qty)
	if err != nil {
		return 0, &SensorError{SensorID: d.ID, Address: d.Address, Quantity: qty, Kind: FailureTransport, Err: err}
	}

	v, err := register.Value(d.Type, words, d.Scale)
	if err != nil {
		return 0, &SensorError{SensorID: d.ID, Address: d.Address, Quantity: qty, Kind: FailureDecode, Err: err}
	}
	return v, nil
}
