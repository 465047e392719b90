package bootstrap

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/zaicro/pquyquy-logging/internal/pkg/logging"
)

// Candidate — backend, доступный для выбора при bootstrap.
type Candidate struct {
	// Name — уникальное имя кандидата, например "logging.slog".
	// В автоматическом выборе участвуют только имена, содержащие
	// logging.PackageName.
	Name string

	// New создаёт backend без параметров. nil означает абстрактное
	// объявление: кандидат виден в каталоге, но не может быть выбран.
	New func() (logging.Logger, error)
}

// Instantiable сообщает, может ли кандидат быть создан.
func (c Candidate) Instantiable() bool {
	return c.New != nil
}

// qualifies сообщает, участвует ли кандидат в автоматическом выборе.
func (c Candidate) qualifies() bool {
	return c.Instantiable() && strings.Contains(c.Name, logging.PackageName)
}

// candidateNamePattern валидирует имя кандидата: сегменты a-z0-9,
// разделённые точкой или дефисом, начинается с буквы.
var candidateNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*([.-][a-z0-9]+)*$`)

// Catalog хранит кандидатов, зарегистрированных пакетами backend-ов.
// Безопасен для конкурентного использования.
type Catalog struct {
	mu         sync.RWMutex
	candidates map[string]Candidate
}

// NewCatalog создаёт пустой каталог. Тесты используют собственный каталог
// вместо Default.
func NewCatalog() *Catalog {
	return &Catalog{candidates: make(map[string]Candidate)}
}

// Register добавляет кандидата в каталог.
//
// Паникует если:
//   - c.Name == "" (programming error)
//   - c.Name не соответствует формату (programming error)
//   - кандидат с таким именем уже зарегистрирован (programming error)
func (cat *Catalog) Register(c Candidate) {
	if c.Name == "" {
		panic("bootstrap: empty candidate name")
	}
	if !candidateNamePattern.MatchString(c.Name) {
		panic("bootstrap: invalid candidate name format: " + c.Name)
	}

	cat.mu.Lock()
	defer cat.mu.Unlock()

	if _, exists := cat.candidates[c.Name]; exists {
		panic("bootstrap: duplicate candidate registration for " + c.Name)
	}
	cat.candidates[c.Name] = c
}

// Lookup возвращает кандидата по имени.
func (cat *Catalog) Lookup(name string) (Candidate, bool) {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	c, ok := cat.candidates[name]
	return c, ok
}

// Names возвращает отсортированный список имён всех кандидатов.
func (cat *Catalog) Names() []string {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	names := make([]string, 0, len(cat.candidates))
	for name := range cat.candidates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Qualified возвращает кандидатов, участвующих в автоматическом выборе,
// отсортированных по имени.
func (cat *Catalog) Qualified() []Candidate {
	cat.mu.RLock()
	defer cat.mu.RUnlock()
	result := make([]Candidate, 0, len(cat.candidates))
	for _, c := range cat.candidates {
		if c.qualifies() {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Default — каталог процесса. Backend-ы регистрируются в нём из init().
var Default = NewCatalog()

// Register добавляет кандидата в Default.
//
// Пример использования:
//
//	func init() {
//	    bootstrap.Register(bootstrap.Candidate{Name: "logging.slog", New: newBackend})
//	}
func Register(c Candidate) {
	Default.Register(c)
}
