package constants

// Material: ключ материала из закрытого набора.
type Material string

const (
	BaseSheet       Material = "baseSheet"
	FinishMembrane  Material = "finishMembrane"
	ProtectionBoard Material = "protectionBoard"
	FlashingBond    Material = "flashingBond"
	Sealant         Material = "sealant"
	Primer          Material = "primer"
	Drain           Material = "drain"
	Vent            Material = "vent"
	MetalFlashing   Material = "metalFlashing"
)

// Materials is the closed set in display order.
var Materials = []Material{
	BaseSheet,
	FinishMembrane,
	ProtectionBoard,
	FlashingBond,
	Sealant,
	Primer,
	Drain,
	Vent,
	MetalFlashing,
}

// AreaDerived lists the materials whose count follows from the geometry.
var AreaDerived = map[Material]bool{
	BaseSheet:       true,
	FinishMembrane:  true,
	ProtectionBoard: true,
	FlashingBond:    true,
}

func IsMaterial(m Material) bool {
	for _, k := range Materials {
		if k == m {
			return true
		}
	}
	return false
}

type FinishType string

const (
	FinishGranule FinishType = "granule"
	FinishWhite   FinishType = "white"
)

var FinishTypes = map[FinishType]bool{
	FinishGranule: true,
	FinishWhite:   true,
}

type DrainSize string

const (
	Drain3in DrainSize = "3in"
	Drain4in DrainSize = "4in"
)

var DrainSizes = map[DrainSize]bool{
	Drain3in: true,
	Drain4in: true,
}

// Label is a bilingual display name.
type Label struct {
	FR string
	EN string
}

var MaterialLabels = map[Material]Label{
	BaseSheet:       {FR: "Membrane de sous-couche (rouleaux)", EN: "Base sheet (rolls)"},
	FinishMembrane:  {FR: "Membrane de finition (rouleaux)", EN: "Cap sheet (rolls)"},
	ProtectionBoard: {FR: "Panneaux de protection", EN: "Protection boards"},
	FlashingBond:    {FR: "Membrane de solin (rouleaux)", EN: "Flashing bond (rolls)"},
	Sealant:         {FR: "Scellant (tubes)", EN: "Sealant (tubes)"},
	Primer:          {FR: "Apprêt (chaudières)", EN: "Primer (pails)"},
	Drain:           {FR: "Drains d'évacuation", EN: "Roof drains"},
	Vent:            {FR: "Évents de toiture", EN: "Roof vents"},
	MetalFlashing:   {FR: "Solin métallique (pi lin.)", EN: "Metal flashing (lin. ft)"},
}
