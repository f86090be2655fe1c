package device

import (
	"context"
	"testing"
	"time"

	domainAssignment "fleet-device-manager/internal/domain/assignment"
	domainCatalog "fleet-device-manager/internal/domain/catalog"
	domainDevice "fleet-device-manager/internal/domain/device"
	domainShipment "fleet-device-manager/internal/domain/shipment"
	domainSoti "fleet-device-manager/internal/domain/soti"
	"fleet-device-manager/internal/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Logger = zap.NewNop()
	m.Run()
}

type fakeDeviceRepo struct {
	devices map[string]*domainDevice.Device
}

func newFakeDeviceRepo(devices ...*domainDevice.Device) *fakeDeviceRepo {
	repo := &fakeDeviceRepo{devices: make(map[string]*domainDevice.Device)}
	for _, d := range devices {
		repo.devices[d.IMEI] = d
	}
	return repo
}

func (r *fakeDeviceRepo) Create(_ context.Context, d *domainDevice.Device) error {
	if _, ok := r.devices[d.IMEI]; ok {
		return domainDevice.ErrDuplicateIMEI
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.devices[d.IMEI] = d
	return nil
}

func (r *fakeDeviceRepo) GetByID(_ context.Context, id uuid.UUID) (*domainDevice.Device, error) {
	for _, d := range r.devices {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, domainDevice.ErrDeviceNotFound
}

func (r *fakeDeviceRepo) GetByIMEI(_ context.Context, imei string) (*domainDevice.Device, error) {
	d, ok := r.devices[imei]
	if !ok {
		return nil, domainDevice.ErrDeviceNotFound
	}
	return d, nil
}

func (r *fakeDeviceRepo) Update(_ context.Context, d *domainDevice.Device) error {
	r.devices[d.IMEI] = d
	return nil
}

func (r *fakeDeviceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domainDevice.DeviceStatus) error {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	d.Status = status
	return nil
}

func (r *fakeDeviceRepo) SoftDelete(ctx context.Context, id uuid.UUID, finalStatus domainDevice.DeviceStatus, reason string) error {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	now := time.Now()
	d.Status = finalStatus
	d.Deleted = true
	d.DeletedReason = &reason
	d.DeletedAt = &now
	return nil
}

func (r *fakeDeviceRepo) List(_ context.Context, filter *domainDevice.Filter) ([]*domainDevice.Device, int64, error) {
	var out []*domainDevice.Device
	for _, d := range r.devices {
		if d.Deleted && !filter.IncludeDeleted {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (r *fakeDeviceRepo) GetStatistics(_ context.Context) (*domainDevice.Statistics, error) {
	return &domainDevice.Statistics{TotalDevices: len(r.devices)}, nil
}

type fakeAssignmentRepo struct {
	assignments []*domainAssignment.Assignment
}

func (r *fakeAssignmentRepo) Open(_ context.Context, a *domainAssignment.Assignment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeAssignmentRepo) Close(_ context.Context, id uuid.UUID, resulting domainDevice.DeviceStatus, reason *string) (time.Time, error) {
	now := time.Now()
	for _, a := range r.assignments {
		if a.ID == id {
			a.Status = domainAssignment.StatusClosed
			a.ClosedAt = &now
			a.CloseReason = reason
			a.ResultingStatus = &resulting
			return now, nil
		}
	}
	return time.Time{}, domainAssignment.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domainAssignment.Assignment, error) {
	for _, a := range r.assignments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domainAssignment.ErrAssignmentNotFound
}

func (r *fakeAssignmentRepo) GetActiveByDeviceID(_ context.Context, deviceID uuid.UUID) (*domainAssignment.Assignment, error) {
	for _, a := range r.assignments {
		if a.DeviceID == deviceID && a.IsActive() {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) GetLastByDeviceID(_ context.Context, deviceID uuid.UUID) (*domainAssignment.Assignment, error) {
	var last *domainAssignment.Assignment
	for _, a := range r.assignments {
		if a.DeviceID != deviceID {
			continue
		}
		if last == nil || a.AssignedAt.After(last.AssignedAt) {
			last = a
		}
	}
	return last, nil
}

func (r *fakeAssignmentRepo) ListByDeviceID(_ context.Context, deviceID uuid.UUID) ([]*domainAssignment.Assignment, error) {
	var out []*domainAssignment.Assignment
	for _, a := range r.assignments {
		if a.DeviceID == deviceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) List(_ context.Context, _ *domainAssignment.Filter) ([]*domainAssignment.Assignment, int64, error) {
	return r.assignments, int64(len(r.assignments)), nil
}

type fakeShipmentRepo struct {
	shipments []*domainShipment.Shipment
}

func (r *fakeShipmentRepo) Create(_ context.Context, s *domainShipment.Shipment) error {
	for _, existing := range r.shipments {
		if existing.AssignmentID == s.AssignmentID && existing.Leg == s.Leg {
			return domainShipment.ErrLegAlreadyExists
		}
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.shipments = append(r.shipments, s)
	return nil
}

func (r *fakeShipmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domainShipment.Shipment, error) {
	for _, s := range r.shipments {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, domainShipment.ErrShipmentNotFound
}

func (r *fakeShipmentRepo) GetByAssignmentAndLeg(_ context.Context, assignmentID uuid.UUID, leg domainShipment.Leg) (*domainShipment.Shipment, error) {
	for _, s := range r.shipments {
		if s.AssignmentID == assignmentID && s.Leg == leg {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeShipmentRepo) ListByAssignmentID(_ context.Context, assignmentID uuid.UUID) ([]*domainShipment.Shipment, error) {
	var out []*domainShipment.Shipment
	for _, s := range r.shipments {
		if s.AssignmentID == assignmentID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeShipmentRepo) Advance(ctx context.Context, id uuid.UUID, from, to domainShipment.ShipmentStatus, at time.Time) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s.Status != from {
		return domainShipment.ErrInvalidTransition
	}
	s.Status = to
	switch to {
	case domainShipment.StatusShipped:
		s.ShippedAt = &at
	case domainShipment.StatusDelivered:
		s.DeliveredAt = &at
	}
	return nil
}

func (r *fakeShipmentRepo) ConfirmReturn(ctx context.Context, id uuid.UUID, _ string, _ domainDevice.DeviceStatus, notes *string, at time.Time) error {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	s.Status = domainShipment.StatusDelivered
	s.DeliveredAt = &at
	if notes != nil {
		s.Notes = notes
	}
	return nil
}

type fakeSotiReader struct {
	records []*domainSoti.PresenceRecord
}

func (r *fakeSotiReader) GetByIMEIs(_ context.Context, imeis []string) ([]*domainSoti.PresenceRecord, error) {
	wanted := make(map[string]struct{}, len(imeis))
	for _, imei := range imeis {
		wanted[imei] = struct{}{}
	}
	var out []*domainSoti.PresenceRecord
	for _, rec := range r.records {
		if _, ok := wanted[rec.IMEI]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct{}

func (fakeCatalogRepo) GetModel(_ context.Context, _ uuid.UUID) (*domainCatalog.Model, error) {
	return &domainCatalog.Model{}, nil
}

func (fakeCatalogRepo) ListModels(_ context.Context) ([]*domainCatalog.Model, error) {
	return nil, nil
}

func (fakeCatalogRepo) GetDistributor(_ context.Context, _ uuid.UUID) (*domainCatalog.Distributor, error) {
	return &domainCatalog.Distributor{}, nil
}

func (fakeCatalogRepo) ListDistributors(_ context.Context) ([]*domainCatalog.Distributor, error) {
	return nil, nil
}

func newTestService(devRepo *fakeDeviceRepo, aRepo *fakeAssignmentRepo, sRepo *fakeShipmentRepo, soti *fakeSotiReader) *Service {
	return NewService(devRepo, aRepo, sRepo, soti, fakeCatalogRepo{})
}

const testIMEI = "356938035643809"

func TestRegister_DuplicateIMEI(t *testing.T) {
	svc := newTestService(newFakeDeviceRepo(), &fakeAssignmentRepo{}, &fakeShipmentRepo{}, &fakeSotiReader{})

	_, err := svc.Register(context.Background(), &RegisterDeviceRequest{IMEI: testIMEI})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &RegisterDeviceRequest{IMEI: testIMEI})
	assert.ErrorIs(t, err, domainDevice.ErrDuplicateIMEI)
}

func TestRegister_RejectsMalformedIMEI(t *testing.T) {
	svc := newTestService(newFakeDeviceRepo(), &fakeAssignmentRepo{}, &fakeShipmentRepo{}, &fakeSotiReader{})

	_, err := svc.Register(context.Background(), &RegisterDeviceRequest{IMEI: "not-an-imei"})
	assert.Error(t, err)
}

func TestGetStateByIMEI_InTransit(t *testing.T) {
	dev := &domainDevice.Device{
		ID:     uuid.New(),
		IMEI:   testIMEI,
		Status: domainDevice.StatusAssigned,
	}
	voucher := "G-100045"
	active := &domainAssignment.Assignment{
		ID:         uuid.New(),
		DeviceID:   dev.ID,
		Status:     domainAssignment.StatusActive,
		AssignedAt: time.Now(),
	}
	outbound := &domainShipment.Shipment{
		ID:           uuid.New(),
		AssignmentID: active.ID,
		Leg:          domainShipment.LegOutbound,
		VoucherID:    &voucher,
		Status:       domainShipment.StatusShipped,
	}

	svc := newTestService(
		newFakeDeviceRepo(dev),
		&fakeAssignmentRepo{assignments: []*domainAssignment.Assignment{active}},
		&fakeShipmentRepo{shipments: []*domainShipment.Shipment{outbound}},
		&fakeSotiReader{},
	)

	state, err := svc.GetStateByIMEI(context.Background(), testIMEI)
	require.NoError(t, err)
	assert.Equal(t, "En envío", state.State)
	require.NotNil(t, state.ActiveAssignmentID)
	assert.Equal(t, active.ID, *state.ActiveAssignmentID)
}

func TestGetStateByIMEI_PendingSotiWithoutCustody(t *testing.T) {
	dev := &domainDevice.Device{
		ID:     uuid.New(),
		IMEI:   testIMEI,
		Status: domainDevice.StatusUsed,
	}
	name := "WH-OLD-07"
	soti := &fakeSotiReader{records: []*domainSoti.PresenceRecord{{
		ID:         uuid.New(),
		IMEI:       testIMEI,
		DeviceName: &name,
		IsActive:   true,
		UpdatedAt:  time.Now(),
	}}}

	svc := newTestService(newFakeDeviceRepo(dev), &fakeAssignmentRepo{}, &fakeShipmentRepo{}, soti)

	state, err := svc.GetStateByIMEI(context.Background(), testIMEI)
	require.NoError(t, err)
	assert.Equal(t, "Pendiente SOTI", state.State)
	assert.True(t, state.Soti.IsInSoti)
	require.NotNil(t, state.Soti.DeviceName)
	assert.Equal(t, name, *state.Soti.DeviceName)
	assert.Nil(t, state.ActiveAssignmentID)
}

func TestListWithState_MergesOverlayPerRow(t *testing.T) {
	enrolled := &domainDevice.Device{ID: uuid.New(), IMEI: testIMEI, Status: domainDevice.StatusNew}
	plain := &domainDevice.Device{ID: uuid.New(), IMEI: "490154203237518", Status: domainDevice.StatusNew}

	soti := &fakeSotiReader{records: []*domainSoti.PresenceRecord{{
		ID:       uuid.New(),
		IMEI:     enrolled.IMEI,
		IsActive: true,
	}}}

	svc := newTestService(newFakeDeviceRepo(enrolled, plain), &fakeAssignmentRepo{}, &fakeShipmentRepo{}, soti)

	list, err := svc.ListWithState(context.Background(), &DeviceFilterRequest{})
	require.NoError(t, err)
	require.Len(t, list.Devices, 2)

	byIMEI := make(map[string]DeviceStateResponse, len(list.Devices))
	for _, d := range list.Devices {
		byIMEI[d.IMEI] = d
	}
	assert.Equal(t, "Pendiente SOTI", byIMEI[enrolled.IMEI].State)
	assert.Equal(t, "Disponible", byIMEI[plain.IMEI].State)
	assert.False(t, byIMEI[plain.IMEI].Soti.IsInSoti)
}

func TestRetire_WithActiveAssignmentContinuesToBlock(t *testing.T) {
	dev := &domainDevice.Device{ID: uuid.New(), IMEI: testIMEI, Status: domainDevice.StatusAssigned}
	devRepo := newFakeDeviceRepo(dev)

	svc := newTestService(devRepo, &fakeAssignmentRepo{}, &fakeShipmentRepo{}, &fakeSotiReader{})

	resp, err := svc.Retire(context.Background(), dev.ID, &RetireDeviceRequest{
		FinalStatus: "scrapped",
		Reason:      "pantalla destruida",
	})
	require.NoError(t, err)
	assert.True(t, resp.Deleted)
	assert.Equal(t, "scrapped", resp.Status)
	assert.Equal(t, "Chatarra", resp.StatusLabel)

	// A retired device cannot be retired twice.
	_, err = svc.Retire(context.Background(), dev.ID, &RetireDeviceRequest{
		FinalStatus: "donated",
		Reason:      "duplicado",
	})
	assert.ErrorIs(t, err, domainDevice.ErrDeviceRetired)
}
