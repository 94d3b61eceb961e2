package config

// Presets are named parameter regimes per model. Rates are per day for
// the disease presets; the two "textbook" entries reproduce the
// classic fast-epidemic examples used throughout the docs and tests.
var Presets = map[string]map[string]*Config{
	"sir": {
		"textbook": {
			Model: "sir", Integrator: "rk45", Dt: 1e-3, Duration: 20.0,
			Init:    InitConfig{S: 0.99, I: 0.01},
			Disease: DiseaseConfig{Beta: 1.2, Gamma: 1.0},
		},
		"slow-recovery": {
			Model: "sir", Integrator: "rk45", Dt: 1e-3, Duration: 20.0,
			Init:    InitConfig{S: 0.99, I: 0.01},
			Disease: DiseaseConfig{Beta: 1.0, Gamma: 0.1},
		},
		"influenza": {
			Model: "sir", Integrator: "rk45", Dt: 1e-3, Duration: 120.0,
			Init:    InitConfig{S: 0.999, I: 0.001},
			Disease: DiseaseConfig{Beta: 0.5, Gamma: 0.33},
		},
		"measles": {
			Model: "sir", Integrator: "rk45", Dt: 1e-3, Duration: 90.0,
			Init:    InitConfig{S: 0.999, I: 0.001},
			Disease: DiseaseConfig{Beta: 1.75, Gamma: 0.125},
		},
		"lockdown-demo": {
			Model: "sir", Integrator: "rk45", Controller: "lockdown", Dt: 1e-3, Duration: 120.0,
			Init:         InitConfig{S: 0.999, I: 0.001},
			Disease:      DiseaseConfig{Beta: 0.42, Gamma: 0.14},
			Intervention: InterventionConfig{Trigger: 0.05, Release: 0.01, Reduction: 0.6},
		},
	},
	"seir": {
		"covid-like": {
			Model: "seir", Integrator: "rk45", Dt: 1e-3, Duration: 180.0,
			Init:    InitConfig{S: 0.999, I: 0.001},
			Disease: DiseaseConfig{Beta: 0.42, Gamma: 0.14, Sigma: 0.19},
		},
		"long-incubation": {
			Model: "seir", Integrator: "rk45", Dt: 1e-3, Duration: 365.0,
			Init:    InitConfig{S: 0.999, I: 0.001},
			Disease: DiseaseConfig{Beta: 0.3, Gamma: 0.1, Sigma: 0.05},
		},
	},
	"sis": {
		"common-cold": {
			Model: "sis", Integrator: "rk45", Dt: 1e-3, Duration: 200.0,
			Init:    InitConfig{S: 0.99, I: 0.01},
			Disease: DiseaseConfig{Beta: 0.3, Gamma: 0.1},
		},
		"subthreshold": {
			Model: "sis", Integrator: "rk45", Dt: 1e-3, Duration: 100.0,
			Init:    InitConfig{S: 0.95, I: 0.05},
			Disease: DiseaseConfig{Beta: 0.08, Gamma: 0.1},
		},
	},
	"sird": {
		"severe": {
			Model: "sird", Integrator: "rk45", Dt: 1e-3, Duration: 150.0,
			Init:    InitConfig{S: 0.999, I: 0.001},
			Disease: DiseaseConfig{Beta: 0.4, Gamma: 0.09, Mu: 0.01},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
