package draft

import "sync"

// Manager mantiene un borrador por terminal. Sólo el registro lleva candado;
// cada borrador es de un solo escritor (una caja, un cajero).
type Manager struct {
	mu      sync.Mutex
	catalog Catalog
	drafts  map[string]*Draft
}

func NewManager(catalog Catalog) *Manager {
	return &Manager{
		catalog: catalog,
		drafts:  make(map[string]*Draft),
	}
}

// Get regresa el borrador de la terminal, creándolo vacío la primera vez.
func (m *Manager) Get(terminalID string) *Draft {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.drafts[terminalID]
	if !ok {
		d = New(m.catalog)
		m.drafts[terminalID] = d
	}
	return d
}
