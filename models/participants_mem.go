package models

type memParticipantRepo struct{ s *Store }

func NewMemParticipantRepository(s *Store) ParticipantRepository {
	return &memParticipantRepo{s}
}

func (r *memParticipantRepo) GetAll() []Participant {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]Participant{}, r.s.participants...)
}

func (r *memParticipantRepo) GetByID(id ID) (Participant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.participants, id)
	if i < 0 {
		return Participant{}, notFound(KindParticipant, id)
	}
	return r.s.participants[i], nil
}

func (r *memParticipantRepo) Create(p Participant) (Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = freshID(r.s.newID, r.s.participants)
	p.UserID = ParseID(string(p.UserID))
	p.EventID = ParseID(string(p.EventID))
	r.s.participants = append(r.s.participants, p)
	return p, nil
}

func (r *memParticipantRepo) Update(id ID, patch ParticipantPatch) (Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.participants, id)
	if i < 0 {
		return Participant{}, notFound(KindParticipant, id)
	}
	r.s.participants[i] = patch.Apply(r.s.participants[i])
	return r.s.participants[i], nil
}

func (r *memParticipantRepo) Delete(id ID) (Participant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.participants, id)
	if i < 0 {
		return Participant{}, notFound(KindParticipant, id)
	}
	p := r.s.participants[i]
	r.s.participants = removeAt(r.s.participants, i)
	return p, nil
}

func (r *memParticipantRepo) DeleteAll() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.participants)
	r.s.participants = nil
	return n
}

func (r *memParticipantRepo) ParticipantsByEvent(eventID ID) []Participant {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filter(r.s.participants, func(p Participant) bool { return p.EventID == eventID })
}
