package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/domain/repository"
	"github.com/Asjad-cell/HealthLink/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var errDatabaseDown = errors.New("database down")

// fakeTransactor serializes transactions the way row locks and the unique
// index serialize them in PostgreSQL. It has no rollback: tests that need
// one assert on the repositories instead.
type fakeTransactor struct {
	mu    sync.Mutex
	calls int
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return fn(nil)
}

type memAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]entity.Appointment
	readErr      error
	nextCreated  time.Time
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{
		appointments: make(map[uuid.UUID]entity.Appointment),
		nextCreated:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *memAppointmentRepo) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.IsActive() && existing.SlotKey() == appointment.SlotKey() {
			return repository.ErrDuplicate
		}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	r.nextCreated = r.nextCreated.Add(time.Minute)
	appointment.CreatedAt = r.nextCreated
	appointment.UpdatedAt = r.nextCreated
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *memAppointmentRepo) find(id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	a, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *memAppointmentRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.find(id)
}

func (r *memAppointmentRepo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return r.find(id)
}

func (r *memAppointmentRepo) match(filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}

	out := make([]entity.Appointment, 0)
	for _, a := range r.appointments {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, a.Status) {
			continue
		}
		if filter.DateFrom != "" && a.DateKey() < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && a.DateKey() > filter.DateTo {
			continue
		}
		out = append(out, a)
	}
	entity.SortAppointments(out)
	return out, nil
}

func containsStatus(statuses []entity.AppointmentStatus, s entity.AppointmentStatus) bool {
	for _, candidate := range statuses {
		if candidate == s {
			return true
		}
	}
	return false
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (r *memAppointmentRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error) {
	all, err := r.match(filter)
	if err != nil {
		return nil, 0, err
	}
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *memAppointmentRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.match(entity.AppointmentFilter{PatientID: &patientID})
}

func (r *memAppointmentRepo) FindByDoctorAndPatientForUpdate(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.Appointment, error) {
	return r.match(entity.AppointmentFilter{DoctorID: &doctorID, PatientID: &patientID})
}

func (r *memAppointmentRepo) FindSnapshot(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	return r.match(filter)
}

func (r *memAppointmentRepo) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.Appointment, error) {
	all, err := r.match(entity.AppointmentFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, 0), nil
}

func (r *memAppointmentRepo) FindActiveFrom(ctx context.Context, db *gorm.DB, from time.Time, limit, offset int) ([]entity.Appointment, error) {
	all, err := r.match(entity.AppointmentFilter{
		Statuses: entity.ActiveAppointmentStatuses,
		DateFrom: from.Format(entity.DateLayout),
	})
	if err != nil {
		return nil, err
	}
	return paginate(all, limit, offset), nil
}

func (r *memAppointmentRepo) ExistsActiveForSlot(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return false, r.readErr
	}
	key := entity.SlotKey(doctorID, date.Format(entity.DateLayout), timeSlot)
	for _, a := range r.appointments {
		if a.IsActive() && a.SlotKey() == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *memAppointmentRepo) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	r.appointments[id] = a
	return 1, nil
}

func (r *memAppointmentRepo) HasAppointmentWith(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error) {
	all, err := r.match(entity.AppointmentFilter{DoctorID: &doctorID, PatientID: &patientID})
	return len(all) > 0, err
}

func (r *memAppointmentRepo) FindPatientIDsByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	all, err := r.match(entity.AppointmentFilter{DoctorID: &doctorID})
	if err != nil {
		return nil, 0, err
	}
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, a := range all {
		if _, ok := seen[a.PatientID]; ok {
			continue
		}
		seen[a.PatientID] = struct{}{}
		ids = append(ids, a.PatientID)
	}
	return paginate(ids, limit, offset), int64(len(ids)), nil
}

// put stores an appointment as is, bypassing the slot check.
func (r *memAppointmentRepo) put(a entity.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appointments[a.ID] = a
}

func (r *memAppointmentRepo) status(id uuid.UUID) entity.AppointmentStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointments[id].Status
}

type memAvailabilityRepo struct {
	mu    sync.Mutex
	slots map[uuid.UUID][]entity.AvailabilitySlot
}

func newMemAvailabilityRepo() *memAvailabilityRepo {
	return &memAvailabilityRepo{slots: make(map[uuid.UUID][]entity.AvailabilitySlot)}
}

func (r *memAvailabilityRepo) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.AvailabilitySlot(nil), r.slots[doctorID]...), nil
}

func (r *memAvailabilityRepo) ReplaceForDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, slots []entity.AvailabilitySlot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := make([]entity.AvailabilitySlot, len(slots))
	for i := range slots {
		if slots[i].ID == uuid.Nil {
			slots[i].ID = uuid.New()
		}
		slots[i].DoctorID = doctorID
		stored[i] = slots[i]
	}
	r.slots[doctorID] = stored
	return nil
}

type memDoctorRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]entity.DoctorProfile
	countErr error
	createFn func(profile *entity.DoctorProfile) error
}

func newMemDoctorRepo() *memDoctorRepo {
	return &memDoctorRepo{profiles: make(map[uuid.UUID]entity.DoctorProfile)}
}

func (r *memDoctorRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	if r.createFn != nil {
		if err := r.createFn(profile); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.User.ID == uuid.Nil {
		profile.User.ID = uuid.New()
	}
	profile.UserID = profile.User.ID
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memDoctorRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memDoctorRepo) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.DoctorProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.DoctorProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].User.FullName < all[j].User.FullName })
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *memDoctorRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memDoctorRepo) Count(ctx context.Context, db *gorm.DB) (int64, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, 0, r.countErr
	}
	var active int64
	for _, p := range r.profiles {
		if p.User.Active() {
			active++
		}
	}
	return int64(len(r.profiles)), active, nil
}

type memPatientRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]entity.PatientProfile
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{profiles: make(map[uuid.UUID]entity.PatientProfile)}
}

func (r *memPatientRepo) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.User.ID == uuid.Nil {
		profile.User.ID = uuid.New()
	}
	profile.UserID = profile.User.ID
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memPatientRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *memPatientRepo) FindByUserIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) ([]entity.PatientProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.PatientProfile, 0, len(userIDs))
	// Reverse order so callers cannot rely on it.
	for i := len(userIDs) - 1; i >= 0; i-- {
		if p, ok := r.profiles[userIDs[i]]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memPatientRepo) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.PatientProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]entity.PatientProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].User.FullName < all[j].User.FullName })
	return paginate(all, limit, offset), int64(len(all)), nil
}

func (r *memPatientRepo) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = *profile
	return nil
}

func (r *memPatientRepo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.profiles)), nil
}

// memUserRepo edits the users embedded in the doctor and patient profiles.
type memUserRepo struct {
	doctors  *memDoctorRepo
	patients *memPatientRepo
}

func (r *memUserRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	if d, _ := r.doctors.FindByUserID(ctx, db, id); d != nil {
		return &d.User, nil
	}
	if p, _ := r.patients.FindByUserID(ctx, db, id); p != nil {
		return &p.User, nil
	}
	return nil, nil
}

func (r *memUserRepo) Update(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if d, _ := r.doctors.FindByUserID(ctx, db, user.ID); d != nil {
		d.User = *user
		return r.doctors.Update(ctx, db, d)
	}
	if p, _ := r.patients.FindByUserID(ctx, db, user.ID); p != nil {
		p.User = *user
		return r.patients.Update(ctx, db, p)
	}
	return nil
}

func (r *memUserRepo) SetActive(ctx context.Context, db *gorm.DB, id uuid.UUID, active bool) (int64, error) {
	user, _ := r.FindByID(ctx, db, id)
	if user == nil {
		return 0, nil
	}
	user.IsActive = &active
	return 1, r.Update(ctx, db, user)
}

type memRecordRepo struct {
	mu      sync.Mutex
	records map[uuid.UUID]entity.MedicalRecord
	err     error
}

func newMemRecordRepo() *memRecordRepo {
	return &memRecordRepo{records: make(map[uuid.UUID]entity.MedicalRecord)}
}

func (r *memRecordRepo) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	r.records[record.ID] = *record
	return nil
}

func (r *memRecordRepo) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *memRecordRepo) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.MedicalRecord, 0)
	for _, rec := range r.records {
		if rec.PatientID == patientID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memRecordRepo) Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[record.ID] = *record
	return nil
}

func (r *memRecordRepo) PatientsWithHistory(ctx context.Context, db *gorm.DB, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[uuid.UUID]bool)
	for _, id := range patientIDs {
		for _, rec := range r.records {
			if rec.PatientID == id {
				out[id] = true
				break
			}
		}
	}
	return out, nil
}

type memAuditRepo struct {
	mu      sync.Mutex
	logs    []entity.AuditLog
	nextID  int64
	failErr error
}

func (r *memAuditRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failErr != nil {
		return r.failErr
	}
	r.nextID++
	log.ID = r.nextID
	r.logs = append(r.logs, *log)
	return nil
}

func (r *memAuditRepo) FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.AuditLog, 0)
	for i := len(r.logs) - 1; i >= 0; i-- {
		l := r.logs[i]
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.UserID != nil && (l.UserID == nil || *l.UserID != *filter.UserID) {
			continue
		}
		out = append(out, l)
	}
	return paginate(out, limit, offset), int64(len(out)), nil
}

func (r *memAuditRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *memAuditRepo) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.logs))
	for i, l := range r.logs {
		out[i] = l.Action
	}
	return out
}

type memRoleRepo struct{}

func (memRoleRepo) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error) {
	switch name {
	case entity.RoleAdmin:
		return &entity.Role{ID: entity.RoleIDAdmin, RoleName: name}, nil
	case entity.RoleDoctor:
		return &entity.Role{ID: entity.RoleIDDoctor, RoleName: name}, nil
	case entity.RolePatient:
		return &entity.Role{ID: entity.RoleIDPatient, RoleName: name}, nil
	}
	return nil, nil
}

func (memRoleRepo) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error) {
	return []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}, nil
}

// fixture wires every usecase against in-memory repositories. Slot holds
// are disabled until withRedis is called.
type fixture struct {
	log          *logrus.Logger
	hook         *test.Hook
	tx           *fakeTransactor
	appointments *memAppointmentRepo
	availability *memAvailabilityRepo
	doctors      *memDoctorRepo
	patients     *memPatientRepo
	users        *memUserRepo
	records      *memRecordRepo
	audits       *memAuditRepo
	holds        *service.SlotHoldService
	audit        service.AuditService
	redis        *redis.Client
}

// fixtureNow is Monday 2 June 2025, 08:00 UTC.
var fixtureNow = time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

const testMaxPageLimit = 50

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log, hook := test.NewNullLogger()
	f := &fixture{
		log:          log,
		hook:         hook,
		tx:           &fakeTransactor{},
		appointments: newMemAppointmentRepo(),
		availability: newMemAvailabilityRepo(),
		doctors:      newMemDoctorRepo(),
		patients:     newMemPatientRepo(),
		records:      newMemRecordRepo(),
		audits:       &memAuditRepo{},
	}
	f.users = &memUserRepo{doctors: f.doctors, patients: f.patients}
	f.audit = service.NewAuditService(log, f.audits)
	f.holds = service.NewSlotHoldService(nil, nil, log, f.appointments, true)
	return f
}

func (f *fixture) withRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	f.redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = f.redis.Close() })
	f.holds = service.NewSlotHoldService(nil, f.redis, f.log, f.appointments, true)
	return mr
}

func (f *fixture) appointmentUsecase() AppointmentUsecase {
	return NewAppointmentUsecase(nil, f.log, f.tx, f.appointments, f.availability, f.doctors, f.patients, f.records, f.holds, f.audit, testMaxPageLimit)
}

func (f *fixture) availabilityUsecase() AvailabilityUsecase {
	return NewAvailabilityUsecase(nil, f.log, f.tx, f.availability, f.appointments, f.doctors, f.audit)
}

func (f *fixture) statsUsecase() StatsUsecase {
	return NewStatsUsecase(nil, f.log, f.appointments, f.doctors, f.patients, f.records, service.NewStatsCache(f.redis, f.log))
}

func (f *fixture) doctorUsecase() DoctorProfileUsecase {
	return NewDoctorProfileUsecase(nil, f.log, f.tx, f.users, memRoleRepo{}, f.doctors, f.audit, testMaxPageLimit)
}

func (f *fixture) patientUsecase() PatientProfileUsecase {
	return NewPatientProfileUsecase(nil, f.log, f.tx, f.users, memRoleRepo{}, f.patients, f.records, f.appointments, f.audit, testMaxPageLimit)
}

func (f *fixture) addDoctor(t *testing.T, name string, active bool) uuid.UUID {
	t.Helper()
	profile := &entity.DoctorProfile{
		LicenseNumber:  "LIC-" + name,
		Specialization: "General",
		User:           entity.User{Email: name + "@clinic.test", FullName: name, RoleID: entity.RoleIDDoctor, IsActive: &active},
	}
	require.NoError(t, f.doctors.Create(context.Background(), nil, profile))
	return profile.UserID
}

func (f *fixture) addPatient(t *testing.T, name string) uuid.UUID {
	t.Helper()
	profile := &entity.PatientProfile{
		DateOfBirth: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:      entity.GenderFemale,
		User:        entity.User{Email: name + "@mail.test", FullName: name, RoleID: entity.RoleIDPatient},
	}
	require.NoError(t, f.patients.Create(context.Background(), nil, profile))
	return profile.UserID
}

func (f *fixture) setWeek(t *testing.T, doctorID uuid.UUID, day entity.DayOfWeek, start, end string) {
	t.Helper()
	require.NoError(t, f.availability.ReplaceForDoctor(context.Background(), nil, doctorID, []entity.AvailabilitySlot{
		{DayOfWeek: day, StartTime: start, EndTime: end},
	}))
}

// seedAppointment stores an appointment directly, bypassing booking rules.
func (f *fixture) seedAppointment(doctorID, patientID uuid.UUID, date, slot string, status entity.AppointmentStatus) entity.Appointment {
	d, _ := entity.ParseDate(date)
	f.appointments.mu.Lock()
	f.appointments.nextCreated = f.appointments.nextCreated.Add(time.Minute)
	created := f.appointments.nextCreated
	f.appointments.mu.Unlock()

	a := entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        doctorID,
		PatientID:       patientID,
		AppointmentDate: d,
		TimeSlot:        slot,
		Status:          status,
		CreatedAt:       created,
	}
	f.appointments.put(a)
	return a
}

func doctorActor(id uuid.UUID) entity.Actor  { return entity.Actor{ID: id, RoleID: entity.RoleIDDoctor} }
func patientActor(id uuid.UUID) entity.Actor { return entity.Actor{ID: id, RoleID: entity.RoleIDPatient} }
func adminActor() entity.Actor               { return entity.Actor{ID: uuid.New(), RoleID: entity.RoleIDAdmin} }
