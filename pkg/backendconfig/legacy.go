package backendconfig

import "github.com/qompute/qschemas/pkg/variant"

// legacyAliases maps tags emitted by earlier schema versions to their
// current variants. The first generation used suffixless names; the
// coinflip config additionally changed its casing.
var legacyAliases = map[string]string{
	"Aer":                   TagAerConfig,
	"AerState":              TagAerStateConfig,
	"AerUnitary":            TagAerUnitaryConfig,
	"Braket":                TagBraketConfig,
	"Quantinuum":            TagQuantinuumConfig,
	"IBMQ":                  TagIBMQConfig,
	"IBMQEmulator":          TagIBMQEmulatorConfig,
	"ProjectQ":              TagProjectQConfig,
	"Qulacs":                TagQulacsConfig,
	"SeleneQuest":           TagSeleneQuestConfig,
	"SeleneStim":            TagSeleneStimConfig,
	"SeleneLean":            TagSeleneLeanConfig,
	"SeleneCoinflip":        TagSeleneCoinflipConfig,
	"SeleneCoinFlipConfig":  TagSeleneCoinflipConfig,
	"SeleneClassicalReplay": TagSeleneClassicalReplayConfig,
}

// registerLegacy installs the compatibility adapter: tag aliases for
// renamed variants and field rewrites for reshaped ones. IBM credentials
// moved from separate hub/group/project fields to a single joined
// instance string.
func registerLegacy(f *variant.Family) {
	for legacy, current := range legacyAliases {
		f.MustRegisterAlias(legacy, current)
	}

	f.MustRegisterRewrite(TagIBMQConfig, variant.JoinFields("instance", "/", "hub", "group", "project"))
	f.MustRegisterRewrite(TagIBMQEmulatorConfig, variant.JoinFields("instance", "/", "hub", "group", "project"))
}
