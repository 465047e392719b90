package logging

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// MessageFilter решает, отбросить ли сообщение.
// Возвращает true если сообщение НЕ должно попасть в лог.
type MessageFilter func(msg string) bool

// Verdict — решение о записи сообщения.
type Verdict int

// Возможные решения Admit.
const (
	// VerdictEmit — сообщение пишется.
	VerdictEmit Verdict = iota
	// VerdictFiltered — сообщение отклонено фильтром.
	VerdictFiltered
	// VerdictEmpty — пустое сообщение без ошибки.
	VerdictEmpty
)

// String возвращает имя решения; используется как label метрик.
func (v Verdict) String() string {
	switch v {
	case VerdictEmit:
		return "emit"
	case VerdictFiltered:
		return "filtered"
	case VerdictEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Admit решает, писать ли сообщение. Сообщение не пишется если filter его
// отклоняет, или если оно пустое (или из пробелов) и ошибка не передана.
// Пустое сообщение с ошибкой пишется: ошибка сама по себе информативна.
func Admit(filter MessageFilter, msg string, err error) Verdict {
	if filter != nil && filter(msg) {
		return VerdictFiltered
	}
	if strings.TrimSpace(msg) == "" && err == nil {
		return VerdictEmpty
	}
	return VerdictEmit
}

// ShouldEmit — сокращение для Admit(...) == VerdictEmit.
func ShouldEmit(filter MessageFilter, msg string, err error) bool {
	return Admit(filter, msg, err) == VerdictEmit
}

// RejectContaining отклоняет сообщения, содержащие любую из подстрок.
// Сравнение без учёта регистра по правилам Unicode case folding.
// Пустые подстроки игнорируются.
func RejectContaining(substrs ...string) MessageFilter {
	folded := make([]string, 0, len(substrs))
	for _, s := range substrs {
		if s == "" {
			continue
		}
		folded = append(folded, cases.Fold().String(s))
	}
	if len(folded) == 0 {
		return nil
	}
	return func(msg string) bool {
		m := cases.Fold().String(msg)
		for _, s := range folded {
			if strings.Contains(m, s) {
				return true
			}
		}
		return false
	}
}

// RejectMatching отклоняет сообщения, совпадающие с регулярным выражением.
// nil re означает «без фильтра».
func RejectMatching(re *regexp.Regexp) MessageFilter {
	if re == nil {
		return nil
	}
	return re.MatchString
}

// AnyFilter объединяет фильтры: сообщение отклоняется, если его отклоняет
// хотя бы один. nil-фильтры пропускаются.
func AnyFilter(filters ...MessageFilter) MessageFilter {
	active := make([]MessageFilter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(msg string) bool {
		for _, f := range active {
			if f(msg) {
				return true
			}
		}
		return false
	}
}
