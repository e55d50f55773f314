package entity

type InstructionValidation struct {
	IsValid bool     `json:"is_valid"`
	Issues  []string `json:"issues"`
}

type RegistryValidation struct {
	IsValid bool     `json:"is_valid"`
	Issues  []string `json:"issues"`
}
