package recipe

import (
	"fmt"

	"github.com/mj41/recipedump/protocol"
)

// PotionMix is an exported brewing recipe.
type PotionMix struct {
	InputID     string `json:"inputId"`
	InputMeta   int32  `json:"inputMeta"`
	ReagentID   string `json:"reagentId"`
	ReagentMeta int32  `json:"reagentMeta"`
	OutputID    string `json:"outputId"`
	OutputMeta  int32  `json:"outputMeta"`
}

// ContainerMix is an exported container-changing brewing recipe.
type ContainerMix struct {
	InputID   string `json:"inputId"`
	ReagentID string `json:"reagentId"`
	OutputID  string `json:"outputId"`
}

// PotionMix resolves the item IDs of a potion mix.
func (e *Exporter) PotionMix(m protocol.PotionMix) (PotionMix, error) {
	var (
		out PotionMix
		err error
	)
	if out.InputID, err = e.ids.Lookup(m.InputID); err != nil {
		return PotionMix{}, fmt.Errorf("input: %w", err)
	}
	if out.ReagentID, err = e.ids.Lookup(m.ReagentID); err != nil {
		return PotionMix{}, fmt.Errorf("reagent: %w", err)
	}
	if out.OutputID, err = e.ids.Lookup(m.OutputID); err != nil {
		return PotionMix{}, fmt.Errorf("output: %w", err)
	}
	out.InputMeta = m.InputMeta
	out.ReagentMeta = m.ReagentMeta
	out.OutputMeta = m.OutputMeta
	return out, nil
}

// ContainerMix resolves the item IDs of a container mix.
func (e *Exporter) ContainerMix(m protocol.ContainerMix) (ContainerMix, error) {
	var (
		out ContainerMix
		err error
	)
	if out.InputID, err = e.ids.Lookup(m.InputID); err != nil {
		return ContainerMix{}, fmt.Errorf("input: %w", err)
	}
	if out.ReagentID, err = e.ids.Lookup(m.ReagentID); err != nil {
		return ContainerMix{}, fmt.Errorf("reagent: %w", err)
	}
	if out.OutputID, err = e.ids.Lookup(m.OutputID); err != nil {
		return ContainerMix{}, fmt.Errorf("output: %w", err)
	}
	return out, nil
}
