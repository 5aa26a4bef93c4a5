package models

// Устаревшие значения verificationOutcome и их актуальные эквиваленты.
// Старые версии мобильного приложения записывали составные значения,
// которые сервер больше не принимает.
var deprecatedOutcomes = map[string]string{
	"Positive & Door Lock": "Positive",
	"NSP & Door Lock":      "NSP",
	"ERT":                  "Not Verified",
}

// MigrateOutcome возвращает актуальный эквивалент устаревшего значения
// verificationOutcome и флаг, было ли значение изменено.
// Актуальные значения возвращаются как есть.
func MigrateOutcome(outcome string) (string, bool) {
	if current, ok := deprecatedOutcomes[outcome]; ok {
		return current, true
	}
	return outcome, false
}

// MigrateCaseOutcomes переписывает устаревшие verificationOutcome во всем
// наборе дел. Возвращает true, если хотя бы одно дело было изменено.
// Идемпотентна: повторный прогон по уже мигрированному набору ничего
// не меняет.
func MigrateCaseOutcomes(cases []Case) bool {
	changed := false
	for i := range cases {
		if current, ok := MigrateOutcome(cases[i].VerificationOutcome); ok {
			cases[i].VerificationOutcome = current
			changed = true
		}
	}
	return changed
}
