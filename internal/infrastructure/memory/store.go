// Package memory implementa los puertos de persistencia en memoria (DB_DRIVER=memory y tests).
// Mantiene las mismas reglas de unicidad que el esquema PostgreSQL.
package memory

import (
	"sort"
	"sync"

	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
)

// Store contenedor compartido por todos los repos en memoria.
type Store struct {
	mu       sync.RWMutex
	txMu     sync.Mutex
	seq      int64
	order    map[string]int64
	branches map[string]entity.Branch
	users    map[string]entity.User
	creds    map[string]entity.Credential
	clients  map[string]entity.Client
	receipts map[string]entity.DepositReceipt
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		order:    make(map[string]int64),
		branches: make(map[string]entity.Branch),
		users:    make(map[string]entity.User),
		creds:    make(map[string]entity.Credential),
		clients:  make(map[string]entity.Client),
		receipts: make(map[string]entity.DepositReceipt),
	}
}

// touch registra el orden de inserción de id. Requiere s.mu tomado.
func (s *Store) touch(id string) {
	if _, ok := s.order[id]; ok {
		return
	}
	s.seq++
	s.order[id] = s.seq
}

// byInsertion ordena ids por orden de inserción. Requiere s.mu tomado.
func (s *Store) byInsertion(ids []string) {
	sort.Slice(ids, func(i, j int) bool { return s.order[ids[i]] < s.order[ids[j]] })
}

// undoLog valor previo de cada clave que tocó una transacción de cuentas (nil = no existía).
// Solo se revierten esas claves; lo escrito fuera de la transacción se conserva.
type undoLog struct {
	users map[string]*entity.User
	creds map[string]*entity.Credential
}

func newUndoLog() *undoLog {
	return &undoLog{
		users: make(map[string]*entity.User),
		creds: make(map[string]*entity.Credential),
	}
}

// user registra el estado previo de id si aún no estaba. Requiere s.mu tomado.
func (l *undoLog) user(s *Store, id string) {
	if l == nil {
		return
	}
	if _, seen := l.users[id]; seen {
		return
	}
	if u, ok := s.users[id]; ok {
		l.users[id] = &u
		return
	}
	l.users[id] = nil
}

// cred igual que user para credenciales. Requiere s.mu tomado.
func (l *undoLog) cred(s *Store, subjectID string) {
	if l == nil {
		return
	}
	if _, seen := l.creds[subjectID]; seen {
		return
	}
	if c, ok := s.creds[subjectID]; ok {
		l.creds[subjectID] = &c
		return
	}
	l.creds[subjectID] = nil
}

func (s *Store) rollback(l *undoLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, prev := range l.users {
		if prev == nil {
			delete(s.users, id)
			continue
		}
		s.users[id] = *prev
	}
	for id, prev := range l.creds {
		if prev == nil {
			delete(s.creds, id)
			continue
		}
		s.creds[id] = *prev
	}
}
