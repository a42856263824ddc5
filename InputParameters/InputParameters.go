package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input deck
type InputParameters struct {
	Title    string  `yaml:"Title"`
	Meshtype string  `yaml:"Meshtype"` // rect, pie or hex
	Nzx      int     `yaml:"Nzx"`      // global zone count, x axis
	Nzy      int     `yaml:"Nzy"`      // global zone count, y axis
	Lenx     float64 `yaml:"Lenx"`     // global extent, x axis (angle for pie)
	Leny     float64 `yaml:"Leny"`     // global extent, y axis (radius for pie)
	Ntasks   int     `yaml:"Ntasks"`   // total partition count

	// gas model constants for the hydro cycle
	Gamma  float64 `yaml:"Gamma"`
	Ssmin  float64 `yaml:"Ssmin"`
	Dt     float64 `yaml:"Dt"`
	Cycles int     `yaml:"Cycles"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Meshtype\n", ip.Meshtype)
	fmt.Printf("[%dx%d]\t\t\t= Zones\n", ip.Nzx, ip.Nzy)
	fmt.Printf("%8.5f\t\t= Lenx\n", ip.Lenx)
	fmt.Printf("%8.5f\t\t= Leny\n", ip.Leny)
	fmt.Printf("[%d]\t\t\t\t= Ntasks\n", ip.Ntasks)
	fmt.Printf("%8.5f\t\t= Gamma\n", ip.Gamma)
	fmt.Printf("%8.5f\t\t= Ssmin\n", ip.Ssmin)
	fmt.Printf("%8.5f\t\t= Dt\n", ip.Dt)
	fmt.Printf("[%d]\t\t\t\t= Cycles\n", ip.Cycles)
}
