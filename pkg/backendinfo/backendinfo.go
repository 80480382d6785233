// Package backendinfo defines the stored form of a quantum device's
// capability snapshot: its connectivity graph with per-node and per-edge
// error rates, supported gate set and feature flags. The stored form is
// JSON-shaped so external collaborators can persist and replay it.
package backendinfo

import (
	"fmt"
	"sort"

	"github.com/qompute/qschemas/pkg/field"
)

// Register identifies a qubit register: a register name plus its index
// coordinates.
type Register struct {
	Name  string `json:"name"`
	Index []int  `json:"index"`
}

// String renders the register in the conventional name[i][j] form.
func (r Register) String() string {
	out := r.Name
	for _, i := range r.Index {
		out += fmt.Sprintf("[%d]", i)
	}
	return out
}

// StoredNode is a node in a device's connectivity graph, along with its
// error rates.
type StoredNode struct {
	UnitID                Register           `json:"unitid"`
	AverageError          *float64           `json:"average_error,omitempty"`
	ReadoutError          *float64           `json:"readout_error,omitempty"`
	GateErrors            map[string]float64 `json:"gate_errors"`
	ZeroStateReadoutError *float64           `json:"zero_state_readout_error,omitempty"`
	OneStateReadoutError  *float64           `json:"one_state_readout_error,omitempty"`
}

// Validate checks the node's error rates.
func (n *StoredNode) Validate() error {
	rates := []struct {
		name  string
		value *float64
	}{
		{"average_error", n.AverageError},
		{"readout_error", n.ReadoutError},
		{"zero_state_readout_error", n.ZeroStateReadoutError},
		{"one_state_readout_error", n.OneStateReadoutError},
	}
	for _, r := range rates {
		if r.value == nil {
			continue
		}
		if err := field.InRange(r.name, *r.value, 0.0, 1.0); err != nil {
			return err
		}
	}
	return checkGateErrors(n.GateErrors)
}

// checkGateErrors validates a gate error-rate map in deterministic key
// order so repeated runs report the same violation.
func checkGateErrors(gateErrors map[string]float64) error {
	gates := make([]string, 0, len(gateErrors))
	for gate := range gateErrors {
		gates = append(gates, gate)
	}
	sort.Strings(gates)

	for _, gate := range gates {
		if err := field.InRange("gate_errors."+gate, gateErrors[gate], 0.0, 1.0); err != nil {
			return err
		}
	}
	return nil
}

// StoredEdge is an edge in a device's connectivity graph, along with its
// error rates.
type StoredEdge struct {
	UnitIDFrom   Register           `json:"unitid_from"`
	UnitIDTo     Register           `json:"unitid_to"`
	AverageError *float64           `json:"average_error,omitempty"`
	GateErrors   map[string]float64 `json:"gate_errors"`
}

// Validate checks the edge's error rates.
func (e *StoredEdge) Validate() error {
	if e.AverageError != nil {
		if err := field.InRange("average_error", *e.AverageError, 0.0, 1.0); err != nil {
			return err
		}
	}
	return checkGateErrors(e.GateErrors)
}

// StoredDevice is the nodes and edges that together make up a device's
// connectivity graph.
type StoredDevice struct {
	Nodes []StoredNode `json:"nodes"`
	Edges []StoredEdge `json:"edges"`

	NNodes         *int  `json:"n_nodes,omitempty"`
	FullyConnected *bool `json:"fully_connected,omitempty"`
}

// Validate checks every node and edge in the graph.
func (d *StoredDevice) Validate() error {
	if d.NNodes != nil {
		if err := field.NonNegative("n_nodes", *d.NNodes); err != nil {
			return err
		}
	}
	for i := range d.Nodes {
		if err := d.Nodes[i].Validate(); err != nil {
			return err
		}
	}
	for i := range d.Edges {
		if err := d.Edges[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// StoredBackendInfo is a backend's capability snapshot in a form that can
// be converted to and from JSON for storage.
type StoredBackendInfo struct {
	Name                          string                 `json:"name"`
	DeviceName                    *string                `json:"device_name,omitempty"`
	Version                       string                 `json:"version"`
	Device                        StoredDevice           `json:"device"`
	GateSet                       []string               `json:"gate_set"`
	NClReg                        *int                   `json:"n_cl_reg,omitempty"`
	SupportsFastFeedforward       bool                   `json:"supports_fast_feedforward"`
	SupportsReset                 bool                   `json:"supports_reset"`
	SupportsMidcircuitMeasurement bool                   `json:"supports_midcircuit_measurement"`
	Misc                          map[string]interface{} `json:"misc"`
}

// Validate checks required identification fields and the device graph.
func (b *StoredBackendInfo) Validate() error {
	if err := field.NotEmpty("name", b.Name); err != nil {
		return err
	}
	if err := field.NotEmpty("version", b.Version); err != nil {
		return err
	}
	if b.NClReg != nil {
		if err := field.NonNegative("n_cl_reg", *b.NClReg); err != nil {
			return err
		}
	}
	if b.Misc == nil {
		b.Misc = map[string]interface{}{}
	}
	return b.Device.Validate()
}
