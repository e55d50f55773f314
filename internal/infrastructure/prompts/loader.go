package prompts

import (
	_ "embed"
)

//go:embed engine_system.tmpl
var EngineSystemTemplate string
