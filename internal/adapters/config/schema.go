package config

// Configfile represents the structure of the flowlock.yaml configuration file.
type Configfile struct {
	Lockfile       string            `yaml:"lockfile"`
	FlowTypedDir   string            `yaml:"flowTypedDir"`
	PackageManager string            `yaml:"packageManager"`
	Commands       CommandsDTO       `yaml:"commands"`
	Environment    map[string]string `yaml:"environment"`
	Journal        string            `yaml:"journal"`
}

// CommandsDTO represents the external tool invocations in the configuration.
type CommandsDTO struct {
	FlowTyped []string `yaml:"flowTyped"`
	Flowgen   []string `yaml:"flowgen"`
	Formatter []string `yaml:"formatter"`
}
