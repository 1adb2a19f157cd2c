// Package observability exposes Prometheus metrics for the frame loop.
package observability

import (
	"fmt"
	"net/http"

	"github.com/decker502/orrery/pkg/params"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FrameCollector bundles the frame driver metrics.
// All methods are safe to call on a nil collector.
type FrameCollector struct {
	gatherer prometheus.Gatherer

	FramesTotal          prometheus.Counter
	ReconciliationsTotal prometheus.Counter
	ModeSwitchesTotal    *prometheus.CounterVec
	EllipticalMode       prometheus.Gauge
	EllipseTheta         prometheus.Gauge
	SimulatedSeconds     prometheus.Counter
	FrameDelta           prometheus.Histogram
}

// NewFrameCollector registers frame metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil.
func NewFrameCollector(reg prometheus.Registerer) (*FrameCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frames, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Number of simulation frames stepped by the frame driver.",
	}), "orrery_frames_total")
	if err != nil {
		return nil, err
	}

	reconciles, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_radius_reconciliations_total",
		Help: "Number of frames in which circular orbit radii were re-applied.",
	}), "orrery_radius_reconciliations_total")
	if err != nil {
		return nil, err
	}

	switches, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_mode_switches_total",
		Help: "Number of motion mode transitions, labeled by the mode entered.",
	}, []string{"to"}), "orrery_mode_switches_total")
	if err != nil {
		return nil, err
	}

	mode, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_elliptical_mode",
		Help: "1 when the orbiting body follows the parametric ellipse, 0 when circular.",
	}), "orrery_elliptical_mode")
	if err != nil {
		return nil, err
	}

	theta, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_ellipse_theta_radians",
		Help: "Accumulated parametric angle of the orbiting body (not wrapped).",
	}), "orrery_ellipse_theta_radians")
	if err != nil {
		return nil, err
	}

	simulated, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_simulated_seconds_total",
		Help: "Sum of delta times fed to the motion systems.",
	}), "orrery_simulated_seconds_total")
	if err != nil {
		return nil, err
	}

	delta, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_frame_delta_seconds",
		Help:    "Delta time of each stepped frame.",
		Buckets: []float64{0, 0.004, 0.008, 0.0167, 0.025, 0.033, 0.05, 0.1, 0.25},
	}), "orrery_frame_delta_seconds")
	if err != nil {
		return nil, err
	}

	return &FrameCollector{
		gatherer:             gatherer,
		FramesTotal:          frames,
		ReconciliationsTotal: reconciles,
		ModeSwitchesTotal:    switches,
		EllipticalMode:       mode,
		EllipseTheta:         theta,
		SimulatedSeconds:     simulated,
		FrameDelta:           delta,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *FrameCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler returns an HTTP handler serving the collector's registry.
func (c *FrameCollector) Handler() http.Handler {
	gatherer := c.Gatherer()
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// ObserveFrame records one stepped frame.
func (c *FrameCollector) ObserveFrame(deltaTime float64, mode params.Mode, theta float64) {
	if c == nil {
		return
	}
	c.FramesTotal.Inc()
	if deltaTime > 0 {
		c.SimulatedSeconds.Add(deltaTime)
	}
	c.FrameDelta.Observe(deltaTime)
	if mode == params.ModeElliptical {
		c.EllipticalMode.Set(1)
	} else {
		c.EllipticalMode.Set(0)
	}
	c.EllipseTheta.Set(theta)
}

// ObserveReconcile increments the radius reconciliation counter.
func (c *FrameCollector) ObserveReconcile() {
	if c == nil {
		return
	}
	c.ReconciliationsTotal.Inc()
}

// ObserveModeSwitch increments the mode switch counter for the mode entered.
func (c *FrameCollector) ObserveModeSwitch(from, to params.Mode) {
	if c == nil {
		return
	}
	c.ModeSwitchesTotal.WithLabelValues(to.String()).Inc()
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}
