package models

type memEventRepo struct{ s *Store }

func NewMemEventRepository(s *Store) EventRepository { return &memEventRepo{s} }

func (r *memEventRepo) GetAll() []Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]Event{}, r.s.events...)
}

func (r *memEventRepo) GetByID(id ID) (Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.events, id)
	if i < 0 {
		return Event{}, notFound(KindEvent, id)
	}
	return r.s.events[i], nil
}

// Create stores foreign keys in canonical form.
func (r *memEventRepo) Create(e Event) (Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e.ID = freshID(r.s.newID, r.s.events)
	e.LocationID = ParseID(string(e.LocationID))
	e.UserID = ParseID(string(e.UserID))
	r.s.events = append(r.s.events, e)
	return e, nil
}

func (r *memEventRepo) Update(id ID, p EventPatch) (Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.events, id)
	if i < 0 {
		return Event{}, notFound(KindEvent, id)
	}
	r.s.events[i] = p.Apply(r.s.events[i])
	return r.s.events[i], nil
}

func (r *memEventRepo) Delete(id ID) (Event, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.events, id)
	if i < 0 {
		return Event{}, notFound(KindEvent, id)
	}
	e := r.s.events[i]
	r.s.events = removeAt(r.s.events, i)
	return e, nil
}

// DeleteAll reports the size of the events collection itself.
func (r *memEventRepo) DeleteAll() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.events)
	r.s.events = nil
	return n
}

func (r *memEventRepo) EventsByUser(userID ID) []Event {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filter(r.s.events, func(e Event) bool { return e.UserID == userID })
}
