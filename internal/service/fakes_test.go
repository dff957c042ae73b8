package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"locacar/internal/apperrors"
	"locacar/internal/db"
	"locacar/internal/entities"
)

// In-memory store fakes. Maps are keyed by id; errX fields force failures.

type fakeCarStore struct {
	cars         map[string]*db.Car
	setStatusErr error
}

func newFakeCarStore() *fakeCarStore {
	return &fakeCarStore{cars: make(map[string]*db.Car)}
}

func (f *fakeCarStore) List() ([]db.Car, error) {
	out := make([]db.Car, 0, len(f.cars))
	for _, c := range f.cars {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCarStore) GetByID(id string) (*db.Car, error) {
	c, ok := f.cars[id]
	if !ok {
		return nil, apperrors.NotFoundf("Car not found.")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCarStore) Create(c *db.Car) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	f.cars[c.ID] = &cp
	return nil
}

func (f *fakeCarStore) Save(c *db.Car) error {
	if _, ok := f.cars[c.ID]; !ok {
		return apperrors.NotFoundf("Car not found.")
	}
	cp := *c
	f.cars[c.ID] = &cp
	return nil
}

func (f *fakeCarStore) SetStatus(id, status string, byUserID *string) error {
	if f.setStatusErr != nil {
		return f.setStatusErr
	}
	c, ok := f.cars[id]
	if !ok {
		return apperrors.NotFoundf("Car not found.")
	}
	c.Status = status
	now := time.Now().UTC()
	c.UpdatedAt = &now
	c.UpdatedBy = byUserID
	return nil
}

func (f *fakeCarStore) Delete(id string) error {
	if _, ok := f.cars[id]; !ok {
		return apperrors.NotFoundf("Car not found.")
	}
	delete(f.cars, id)
	return nil
}

type fakeClientStore struct {
	clients map[string]*db.Client
}

func newFakeClientStore() *fakeClientStore {
	return &fakeClientStore{clients: make(map[string]*db.Client)}
}

func (f *fakeClientStore) List() ([]db.Client, error) {
	out := make([]db.Client, 0, len(f.clients))
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientStore) GetByID(id string) (*db.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, apperrors.NotFoundf("Client not found.")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientStore) Create(c *db.Client) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientStore) Save(c *db.Client) error {
	if _, ok := f.clients[c.ID]; !ok {
		return apperrors.NotFoundf("Client not found.")
	}
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientStore) Delete(id string) error {
	if _, ok := f.clients[id]; !ok {
		return apperrors.NotFoundf("Client not found.")
	}
	delete(f.clients, id)
	return nil
}

type fakeUserStore struct {
	users map[string]*db.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*db.User)}
}

func (f *fakeUserStore) GetByUsername(username string) (*db.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) ListManagers() ([]db.User, error) {
	var out []db.User
	for _, u := range f.users {
		if u.Role == "manager" {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) GetManagerByID(id string) (*db.User, error) {
	u, ok := f.users[id]
	if !ok || u.Role != "manager" {
		return nil, apperrors.NotFoundf("Manager not found.")
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) Create(u *db.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) Save(u *db.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return apperrors.NotFoundf("Manager not found.")
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserStore) DeleteManager(id string) error {
	u, ok := f.users[id]
	if !ok || u.Role != "manager" {
		return apperrors.NotFoundf("Manager not found.")
	}
	delete(f.users, id)
	return nil
}

type fakeReservationStore struct {
	reservations  map[string]*db.Reservation
	takenNumbers  map[string]bool
	collideFirst  int // report the first N generated numbers as taken
	createErr     error
	saveErr       error
	createCalls   int
	numberQueries int
}

func newFakeReservationStore() *fakeReservationStore {
	return &fakeReservationStore{
		reservations: make(map[string]*db.Reservation),
		takenNumbers: make(map[string]bool),
	}
}

func (f *fakeReservationStore) Create(res *db.Reservation) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationStore) Save(res *db.Reservation) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if _, ok := f.reservations[res.ID]; !ok {
		return apperrors.NotFoundf("Reservation not found.")
	}
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeReservationStore) GetByID(id string) (*db.Reservation, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, apperrors.NotFoundf("Reservation not found.")
	}
	cp := *res
	return &cp, nil
}

func (f *fakeReservationStore) Delete(id string) error {
	if _, ok := f.reservations[id]; !ok {
		return apperrors.NotFoundf("Reservation not found.")
	}
	delete(f.reservations, id)
	return nil
}

func (f *fakeReservationStore) NumberExists(number string) (bool, error) {
	f.numberQueries++
	if f.collideFirst > 0 {
		f.collideFirst--
		f.takenNumbers[number] = true
		return true, nil
	}
	if f.takenNumbers[number] {
		return true, nil
	}
	for _, res := range f.reservations {
		if res.ReservationNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReservationStore) CountForCar(carID string, statuses ...string) (int, error) {
	count := 0
	for _, res := range f.reservations {
		if res.CarID != carID {
			continue
		}
		for _, s := range statuses {
			if res.Status == s {
				count++
				break
			}
		}
	}
	return count, nil
}

func (f *fakeReservationStore) CountForClient(clientID string) (int, error) {
	count := 0
	for _, res := range f.reservations {
		if res.ClientID == clientID {
			count++
		}
	}
	return count, nil
}

func (f *fakeReservationStore) GetDetailed(id string) (*entities.ReservationDetail, error) {
	res, ok := f.reservations[id]
	if !ok {
		return nil, apperrors.NotFoundf("Reservation not found.")
	}
	return &entities.ReservationDetail{Reservation: *res}, nil
}

func (f *fakeReservationStore) ListDetailed() ([]entities.ReservationDetail, error) {
	out := make([]entities.ReservationDetail, 0, len(f.reservations))
	for _, res := range f.reservations {
		out = append(out, entities.ReservationDetail{Reservation: *res})
	}
	return out, nil
}

func (f *fakeReservationStore) Recent(limit int) ([]entities.ReservationDetail, error) {
	all, err := f.ListDetailed()
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeAuditStore struct {
	entries   []db.AuditLogEntry
	insertErr error
}

func (f *fakeAuditStore) Insert(e *db.AuditLogEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("audit-%d", len(f.entries)+1)
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeAuditStore) List(q entities.AuditQuery) ([]db.AuditLogEntry, int, error) {
	return f.entries, len(f.entries), nil
}

// lastEntry returns the most recent audit entry matching action, or nil.
func (f *fakeAuditStore) lastEntry(action string) *db.AuditLogEntry {
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].Action == action {
			return &f.entries[i]
		}
	}
	return nil
}

var errStoreDown = errors.New("store unavailable")
