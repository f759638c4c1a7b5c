package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain"
	"github.com/clinicdesk/clinicdesk/internal/domain/appointment"
	"github.com/clinicdesk/clinicdesk/internal/domain/doctor"
	"github.com/clinicdesk/clinicdesk/internal/domain/patient"
	"github.com/clinicdesk/clinicdesk/internal/domain/prescription"
	"github.com/clinicdesk/clinicdesk/pkg/metrics"
	"github.com/google/uuid"
)

// Collectors register against the default prometheus registry, so the test
// binary shares a single instance.
var testMetrics = metrics.NewCollector("clinicdesk_test")

type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*doctor.Doctor

	getErr  error
	listErr error
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*doctor.Doctor)}
}

func (r *fakeDoctorRepo) add(d *doctor.Doctor) *doctor.Doctor {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.doctors[d.ID] = d
	return d
}

func (r *fakeDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.doctors {
		if strings.EqualFold(existing.Email, d.Email) {
			return doctor.ErrDoctorAlreadyExists
		}
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.doctors[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d, nil
}

func (r *fakeDoctorRepo) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.doctors {
		if strings.EqualFold(d.Email, email) {
			return d, nil
		}
	}
	return nil, doctor.ErrDoctorNotFound
}

func (r *fakeDoctorRepo) Update(ctx context.Context, d *doctor.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[d.ID]; !ok {
		return doctor.ErrDoctorNotFound
	}
	r.doctors[d.ID] = d
	return nil
}

func (r *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.doctors[id]; !ok {
		return doctor.ErrDoctorNotFound
	}
	delete(r.doctors, id)
	return nil
}

func (r *fakeDoctorRepo) List(ctx context.Context, q *doctor.ListDoctorsQuery) ([]*doctor.Doctor, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*doctor.Doctor
	for _, d := range r.doctors {
		if q.Name != "" && !strings.Contains(strings.ToLower(d.Name), strings.ToLower(q.Name)) {
			continue
		}
		if q.Specialty != "" && !strings.EqualFold(d.Specialty, q.Specialty) {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// fakeAppointmentRepo enforces the same (doctor, time) uniqueness the database
// index does, so races resolve in tests the way they do in production.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*appointment.Appointment

	// Name lookups back the substring filters the real queries do with joins.
	patientNames map[uuid.UUID]string
	doctorNames  map[uuid.UUID]string

	listErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appts:        make(map[uuid.UUID]*appointment.Appointment),
		patientNames: make(map[uuid.UUID]string),
		doctorNames:  make(map[uuid.UUID]string),
	}
}

func (r *fakeAppointmentRepo) slotTaken(a *appointment.Appointment) bool {
	for _, existing := range r.appts {
		if existing.ID == a.ID {
			continue
		}
		if existing.DoctorID == a.DoctorID && existing.AppointmentTime.Equal(a.AppointmentTime) {
			return true
		}
	}
	return false
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(a) {
		return appointment.ErrSlotTaken
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appts[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) Save(ctx context.Context, a *appointment.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.slotTaken(a) {
		return appointment.ErrSlotTaken
	}
	cp := *a
	r.appts[a.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appts[id]; !ok {
		return appointment.ErrAppointmentNotFound
	}
	delete(r.appts, id)
	return nil
}

func (r *fakeAppointmentRepo) DeleteByDoctor(ctx context.Context, doctorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.appts {
		if a.DoctorID == doctorID {
			delete(r.appts, id)
		}
	}
	return nil
}

func (r *fakeAppointmentRepo) ListForDoctorBetween(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range r.appts {
		if a.DoctorID != doctorID {
			continue
		}
		if a.AppointmentTime.Before(from) || a.AppointmentTime.After(to) {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime.Before(out[j].AppointmentTime) })
	return out, nil
}

func (r *fakeAppointmentRepo) ListForDoctorDay(ctx context.Context, q *appointment.DoctorDayQuery) ([]*appointment.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range r.appts {
		if a.DoctorID != q.DoctorID {
			continue
		}
		if a.AppointmentTime.Before(q.From) || a.AppointmentTime.After(q.To) {
			continue
		}
		if q.PatientName != "" {
			name := r.patientNames[a.PatientID]
			if !strings.Contains(strings.ToLower(name), strings.ToLower(q.PatientName)) {
				continue
			}
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime.Before(out[j].AppointmentTime) })
	return out, nil
}

func (r *fakeAppointmentRepo) ListForPatient(ctx context.Context, q *appointment.PatientQuery) ([]*appointment.Appointment, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*appointment.Appointment
	for _, a := range r.appts {
		if a.PatientID != q.PatientID {
			continue
		}
		if q.Status != nil && a.Status != *q.Status {
			continue
		}
		if q.DoctorName != "" {
			name := r.doctorNames[a.DoctorID]
			if !strings.Contains(strings.ToLower(name), strings.ToLower(q.DoctorName)) {
				continue
			}
		}
		cp := *a
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppointmentTime.Before(out[j].AppointmentTime) })
	return out, nil
}

type fakePatientRepo struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*patient.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*patient.Patient)}
}

func (r *fakePatientRepo) add(p *patient.Patient) *patient.Patient {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return p
}

func (r *fakePatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.patients {
		if strings.EqualFold(existing.Email, p.Email) {
			return patient.ErrPatientAlreadyExists
		}
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.patients[p.ID] = p
	return nil
}

func (r *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p, nil
}

func (r *fakePatientRepo) GetByEmail(ctx context.Context, email string) (*patient.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (r *fakePatientRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.patients {
		if email != "" && strings.EqualFold(p.Email, email) {
			return true, nil
		}
		if phone != "" && p.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

type fakePrescriptionRepo struct {
	mu            sync.Mutex
	prescriptions map[uuid.UUID]*prescription.Prescription
	createErr     error
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{prescriptions: make(map[uuid.UUID]*prescription.Prescription)}
}

func (r *fakePrescriptionRepo) Create(ctx context.Context, p *prescription.Prescription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.prescriptions[p.ID] = p
	return nil
}

func (r *fakePrescriptionRepo) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*prescription.Prescription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.prescriptions {
		if p.AppointmentID == appointmentID {
			return p, nil
		}
	}
	return nil, prescription.ErrPrescriptionNotFound
}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func newFakeAdminRepo(usernames ...string) *fakeAdminRepo {
	r := &fakeAdminRepo{admins: make(map[string]*domain.Admin)}
	for _, u := range usernames {
		r.admins[u] = &domain.Admin{ID: uuid.New(), Username: u}
	}
	return r
}

func (r *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	a, ok := r.admins[username]
	if !ok {
		return nil, errors.New("admin not found")
	}
	return a, nil
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}
