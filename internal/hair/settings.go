package hair

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/VincentWang001/hairgl/pkg/math"
)

// InstanceSettings is the per-instance configuration snapshot consumed once
// per tick. The core never mutates it.
type InstanceSettings struct {
	Visualization VisualizationConfig `yaml:"visualization"`
	Shape         ShapeConfig         `yaml:"shape"`
	Material      MaterialConfig      `yaml:"material"`
	Simulation    SimulationConfig    `yaml:"simulation"`
}

// VisualizationConfig holds output mode, placement and density settings.
type VisualizationConfig struct {
	VisualizeGuides     bool      `yaml:"visualize_guides"`
	VisualizeGrowthMesh bool      `yaml:"visualize_growth_mesh"`
	RenderHair          bool      `yaml:"render_hair"`
	ModelMatrix         math.Mat4 `yaml:"model_matrix"`
	TesselationFactor   float32   `yaml:"tesselation_factor"`
	Density             float32   `yaml:"density"` // strands per unit growth-mesh area
}

// ShapeConfig controls the width profile along a strand.
type ShapeConfig struct {
	RootWidth     float32 `yaml:"root_width"`
	TipWidth      float32 `yaml:"tip_width"`
	ThinningStart float32 `yaml:"thinning_start"` // arc-length fraction in [0, 1]
}

// MaterialConfig is forwarded verbatim to the render backend.
type MaterialConfig struct {
	Specular      float32   `yaml:"specular"`
	Diffuse       float32   `yaml:"diffuse"`
	Ambient       float32   `yaml:"ambient"`
	SpecularPower float32   `yaml:"specular_power"`
	Color         math.Vec4 `yaml:"color"`
}

// SimulationConfig holds the guide dynamics parameters.
type SimulationConfig struct {
	Wind            math.Vec3 `yaml:"wind"`
	WindMagnitude   float32   `yaml:"wind_magnitude"`
	GlobalStiffness float32   `yaml:"global_stiffness"`
	LocalStiffness  float32   `yaml:"local_stiffness"`
	Damping         float32   `yaml:"damping"`
	ThetaX          float32   `yaml:"theta_x"` // bend bias, radians
	ThetaY          float32   `yaml:"theta_y"`
	ThetaZ          float32   `yaml:"theta_z"`
	Ks              float32   `yaml:"ks"` // stretch
	Kb              float32   `yaml:"kb"` // bend
	Kt              float32   `yaml:"kt"` // twist
}

// DefaultInstanceSettings returns a fully specified default configuration.
func DefaultInstanceSettings() InstanceSettings {
	return InstanceSettings{
		Visualization: VisualizationConfig{
			VisualizeGuides:     false,
			VisualizeGrowthMesh: false,
			RenderHair:          true,
			ModelMatrix:         math.Identity(),
			TesselationFactor:   1.0,
			Density:             16.0,
		},
		Shape: ShapeConfig{
			RootWidth:     0.001,
			TipWidth:      0.0005,
			ThinningStart: 0.5,
		},
		Material: MaterialConfig{
			Specular:      0.5,
			Diffuse:       0.5,
			Ambient:       0.5,
			SpecularPower: 50.0,
			Color:         math.Vec4{X: 0, Y: 0, Z: 0, W: 1},
		},
		Simulation: SimulationConfig{
			Wind:            math.Vec3{},
			WindMagnitude:   0,
			GlobalStiffness: 0,
			LocalStiffness:  0,
			Damping:         0.3,
			ThetaX:          0,
			ThetaY:          0,
			ThetaZ:          0,
			Ks:              50000,
			Kb:              0,
			Kt:              0,
		},
	}
}

// Validate rejects settings that no tick can run with. Stiffness and damping
// are not range-checked: values outside [0, 1] are passed through unchanged.
func (s InstanceSettings) Validate() error {
	checks := []struct {
		name  string
		value float32
	}{
		{"density", s.Visualization.Density},
		{"tesselation_factor", s.Visualization.TesselationFactor},
		{"root_width", s.Shape.RootWidth},
		{"tip_width", s.Shape.TipWidth},
		{"ks", s.Simulation.Ks},
		{"kb", s.Simulation.Kb},
		{"kt", s.Simulation.Kt},
	}
	for _, c := range checks {
		if math32.IsNaN(c.value) || c.value < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidSettings, c.name, c.value)
		}
	}

	if ts := s.Shape.ThinningStart; math32.IsNaN(ts) || ts < 0 || ts > 1 {
		return fmt.Errorf("%w: thinning_start must be in [0, 1], got %v", ErrInvalidSettings, ts)
	}
	if math32.IsNaN(s.Simulation.Damping) {
		return fmt.Errorf("%w: damping is NaN", ErrInvalidSettings)
	}

	return nil
}

// bendBias returns the target bend-angle bias rotation.
func (s SimulationConfig) bendBias() math.Quat {
	if s.ThetaX == 0 && s.ThetaY == 0 && s.ThetaZ == 0 {
		return math.QuatIdentity()
	}
	return math.QuatFromEuler(s.ThetaX, s.ThetaY, s.ThetaZ)
}
