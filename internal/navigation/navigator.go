package navigation

import (
	"fmt"
	"io"
	"sync"
)

// Caminhos padrão usados após login e logout.
const (
	LandingPath = "/"
	LoginPath   = "/login"
)

// Navigator é a capacidade imperativa de "ir para o caminho".
type Navigator interface {
	Navigate(path string)
}

// Func adapta uma função comum para Navigator.
type Func func(path string)

func (f Func) Navigate(path string) { f(path) }

// History guarda os caminhos visitados. É o Navigator da CLI: cada comando
// consulta Current() para decidir o que exibir em seguida.
type History struct {
	mu    sync.Mutex
	paths []string
}

// NewHistory cria um histórico vazio.
func NewHistory() *History {
	return &History{}
}

func (h *History) Navigate(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = append(h.paths, path)
}

// Current devolve o último caminho, ou "" se nada foi navegado.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.paths) == 0 {
		return ""
	}
	return h.paths[len(h.paths)-1]
}

// Paths devolve uma cópia do histórico.
func (h *History) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}

// Printer escreve cada navegação em w (ex.: "→ /login").
type Printer struct {
	W io.Writer
}

func (p Printer) Navigate(path string) {
	fmt.Fprintf(p.W, "→ %s\n", path)
}

// Tee repassa a navegação para todos os Navigators informados.
type Tee []Navigator

func (t Tee) Navigate(path string) {
	for _, n := range t {
		n.Navigate(path)
	}
}
