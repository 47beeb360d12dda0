package entity

import "sort"

// ScopeFilter delimita los talleres que puede ver una consulta: un único taller
// o el conjunto de talleres visibles del tenant. Es inmutable: solo se construye
// con NewSingleGarageScope o NewGarageSetScope y no expone el slice interno.
type ScopeFilter struct {
	single GarageID
	set    []GarageID
}

// NewSingleGarageScope restringe la consulta a un taller.
func NewSingleGarageScope(id GarageID) ScopeFilter {
	if id == "" {
		return ScopeFilter{}
	}
	return ScopeFilter{single: id, set: []GarageID{id}}
}

// NewGarageSetScope restringe la consulta a un conjunto de talleres (sin duplicados, ordenado).
func NewGarageSetScope(ids []GarageID) ScopeFilter {
	seen := make(map[GarageID]struct{}, len(ids))
	set := make([]GarageID, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		set = append(set, id)
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return ScopeFilter{set: set}
}

// IsSingle indica si el alcance es un único taller (override explícito).
func (s ScopeFilter) IsSingle() bool { return s.single != "" }

// IsEmpty indica que no hay talleres visibles; la consulta debe devolver vacío.
func (s ScopeFilter) IsEmpty() bool { return len(s.set) == 0 }

// GarageIDs devuelve una copia ordenada de los talleres del alcance.
func (s ScopeFilter) GarageIDs() []GarageID {
	out := make([]GarageID, len(s.set))
	copy(out, s.set)
	return out
}

// Strings devuelve los IDs como []string (para parámetros SQL).
func (s ScopeFilter) Strings() []string {
	out := make([]string, len(s.set))
	for i, id := range s.set {
		out[i] = string(id)
	}
	return out
}

// Contains informa si el taller pertenece al alcance.
func (s ScopeFilter) Contains(id GarageID) bool {
	i := sort.Search(len(s.set), func(i int) bool { return s.set[i] >= id })
	return i < len(s.set) && s.set[i] == id
}
