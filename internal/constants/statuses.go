package constants

// Статусы заявки в удалённом хранилище.
const (
	StatusNew       = "nouvelle"
	StatusReview    = "en_evaluation"
	StatusQuoted    = "soumission_envoyee"
	StatusScheduled = "planifiee"
	StatusDone      = "terminee"
	StatusCancelled = "annulee"
)

var SubmissionStatuses = map[string]bool{
	StatusNew:       true,
	StatusReview:    true,
	StatusQuoted:    true,
	StatusScheduled: true,
	StatusDone:      true,
	StatusCancelled: true,
}

// Contractual constants reproduced on every quote. Do not make them configurable.
const (
	TPSRate         = 0.05
	TVQRate         = 0.09975
	TaxMultiplier   = 1.14975
	HoursPerWorkDay = 9.0
)
