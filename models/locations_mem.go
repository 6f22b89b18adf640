package models

type memLocationRepo struct{ s *Store }

func NewMemLocationRepository(s *Store) LocationRepository { return &memLocationRepo{s} }

func (r *memLocationRepo) GetAll() []Location {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]Location{}, r.s.locations...)
}

func (r *memLocationRepo) GetByID(id ID) (Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.locations, id)
	if i < 0 {
		return Location{}, notFound(KindLocation, id)
	}
	return r.s.locations[i], nil
}

func (r *memLocationRepo) Create(l Location) (Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l.ID = freshID(r.s.newID, r.s.locations)
	r.s.locations = append(r.s.locations, l)
	return l, nil
}

func (r *memLocationRepo) Update(id ID, p LocationPatch) (Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.locations, id)
	if i < 0 {
		return Location{}, notFound(KindLocation, id)
	}
	r.s.locations[i] = p.Apply(r.s.locations[i])
	return r.s.locations[i], nil
}

func (r *memLocationRepo) Delete(id ID) (Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.locations, id)
	if i < 0 {
		return Location{}, notFound(KindLocation, id)
	}
	l := r.s.locations[i]
	r.s.locations = removeAt(r.s.locations, i)
	return l, nil
}

func (r *memLocationRepo) DeleteAll() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.locations)
	r.s.locations = nil
	return n
}
