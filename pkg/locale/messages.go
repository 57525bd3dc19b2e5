package locale

// Message keys are grouped by the validator that emits them. %s / %d slots are
// filled by the caller in argument order.
var catalogs = map[string]map[string]string{
	English: {
		"validation.required":  "%s is required",
		"validation.min":       "%s must be at least %s characters",
		"validation.max":       "%s must be at most %s characters",
		"validation.len":       "%s must be exactly %s characters",
		"validation.email":     "%s must be a valid email address",
		"validation.url":       "%s must be a valid URL",
		"validation.e164":      "%s must be an international phone number like +5511999990000",
		"validation.oneof":     "%s must be one of: %s",
		"validation.objectid":  "%s must be a valid record identifier",
		"validation.date":      "%s must be a date in YYYY-MM-DD format",
		"validation.alpha2":    "%s must be a two-letter country code",
		"validation.cbo_code":  "%s must match the pattern NNNN-NN, e.g. 2521-05",
		"validation.uppercase": "%s must be uppercase",
		"validation.invalid":   "%s is invalid",

		"relationship.current_end_date":  "a current relationship cannot have an end date",
		"relationship.end_before_start":  "end date must be after start date",
		"requirement.entity_type":        "entityType must be one of: person, individualProcess, passport, company",
		"requirement.responsible_party":  "responsibleParty must be one of: client, admin, company",
	},
	BrazilianPortuguese: {
		"validation.required":  "%s é obrigatório",
		"validation.min":       "%s deve ter pelo menos %s caracteres",
		"validation.max":       "%s deve ter no máximo %s caracteres",
		"validation.len":       "%s deve ter exatamente %s caracteres",
		"validation.email":     "%s deve ser um endereço de e-mail válido",
		"validation.url":       "%s deve ser uma URL válida",
		"validation.e164":      "%s deve ser um telefone internacional como +5511999990000",
		"validation.oneof":     "%s deve ser um de: %s",
		"validation.objectid":  "%s deve ser um identificador de registro válido",
		"validation.date":      "%s deve ser uma data no formato AAAA-MM-DD",
		"validation.alpha2":    "%s deve ser um código de país de duas letras",
		"validation.cbo_code":  "%s deve seguir o padrão NNNN-NN, ex. 2521-05",
		"validation.uppercase": "%s deve estar em maiúsculas",
		"validation.invalid":   "%s é inválido",

		"relationship.current_end_date":  "um vínculo atual não pode ter data de término",
		"relationship.end_before_start":  "a data de término deve ser posterior à data de início",
		"requirement.entity_type":        "entityType deve ser um de: person, individualProcess, passport, company",
		"requirement.responsible_party":  "responsibleParty deve ser um de: client, admin, company",
	},
}
