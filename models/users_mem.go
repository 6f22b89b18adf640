package models

type memUserRepo struct{ s *Store }

func NewMemUserRepository(s *Store) UserRepository { return &memUserRepo{s} }

func (r *memUserRepo) GetAll() []User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]User{}, r.s.users...)
}

func (r *memUserRepo) GetByID(id ID) (User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := indexOf(r.s.users, id)
	if i < 0 {
		return User{}, notFound(KindUser, id)
	}
	return r.s.users[i], nil
}

func (r *memUserRepo) Create(u User) (User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = freshID(r.s.newID, r.s.users)
	r.s.users = append(r.s.users, u)
	return u, nil
}

func (r *memUserRepo) Update(id ID, p UserPatch) (User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.users, id)
	if i < 0 {
		return User{}, notFound(KindUser, id)
	}
	r.s.users[i] = p.Apply(r.s.users[i])
	return r.s.users[i], nil
}

func (r *memUserRepo) Delete(id ID) (User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := indexOf(r.s.users, id)
	if i < 0 {
		return User{}, notFound(KindUser, id)
	}
	u := r.s.users[i]
	r.s.users = removeAt(r.s.users, i)
	return u, nil
}

func (r *memUserRepo) DeleteAll() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := len(r.s.users)
	r.s.users = nil
	return n
}

func (r *memUserRepo) UsersByID(id ID) []User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return filter(r.s.users, func(u User) bool { return u.ID == id })
}
