// Package memstore provides an in-memory stand-in for the Postgres engine,
// honoring the same conditional-write contract: guarded writes that lose a
// race return store.ErrConcurrencyConflict, duplicate business keys return
// store.ErrDuplicateKey. All methods are safe for concurrent use.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campuslib/loanledger-go/core"
	"github.com/campuslib/loanledger-go/store"
)

// MemStore holds all state behind one mutex. It is deliberately coarse: the
// point is contract fidelity, not throughput.
type MemStore struct {
	mu       sync.Mutex
	failure  error
	assets   map[uuid.UUID]store.AssetRow
	versions map[uuid.UUID][]store.VersionRow
	students map[uuid.UUID]core.Student
	loans    map[uuid.UUID]core.Loan
}

// New creates an empty MemStore.
func New() *MemStore {
	return &MemStore{
		assets:   make(map[uuid.UUID]store.AssetRow),
		versions: make(map[uuid.UUID][]store.VersionRow),
		students: make(map[uuid.UUID]core.Student),
		loans:    make(map[uuid.UUID]core.Loan),
	}
}

// FailWith makes every subsequent call return err, simulating an unavailable
// storage backend. Pass nil to heal.
func (m *MemStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failure = err
}

// GetAsset implements the Storage contract of the engine.
func (m *MemStore) GetAsset(_ context.Context, assetID uuid.UUID) (store.AssetRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return store.AssetRow{}, m.failure
	}

	row, ok := m.assets[assetID]
	if !ok {
		return store.AssetRow{}, core.ErrNotFound
	}

	return cloneAssetRow(row), nil
}

// InsertAssetWithVersion registers the asset and its CREATE version atomically.
func (m *MemStore) InsertAssetWithVersion(_ context.Context, row store.AssetRow, version store.VersionRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}

	if _, exists := m.assets[row.ID]; exists {
		return store.ErrDuplicateKey
	}

	if row.Code != nil && m.codeTakenLocked(*row.Code, row.ID) {
		return store.ErrDuplicateKey
	}

	m.assets[row.ID] = cloneAssetRow(row)
	m.versions[row.ID] = append(m.versions[row.ID], cloneVersionRow(version))

	return nil
}

// UpdateAssetWithVersion appends the version and swaps the live row, guarded
// by expectedVersion. Both writes succeed or neither does.
func (m *MemStore) UpdateAssetWithVersion(
	_ context.Context,
	row store.AssetRow,
	version store.VersionRow,
	expectedVersion uint,
) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}

	current, ok := m.assets[row.ID]
	if !ok || current.CurrentVersion != expectedVersion {
		return store.ErrConcurrencyConflict
	}

	for _, existing := range m.versions[row.ID] {
		if existing.Sequence == version.Sequence {
			return store.ErrConcurrencyConflict
		}
	}

	m.assets[row.ID] = cloneAssetRow(row)
	m.versions[row.ID] = append(m.versions[row.ID], cloneVersionRow(version))

	return nil
}

// AssetHistory returns the version trail, newest first. A limit of 0 means no
// limit.
func (m *MemStore) AssetHistory(_ context.Context, assetID uuid.UUID, limit uint) ([]store.VersionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return nil, m.failure
	}

	trail := m.versions[assetID]
	history := make([]store.VersionRow, 0, len(trail))

	for i := len(trail) - 1; i >= 0; i-- {
		if limit > 0 && uint(len(history)) == limit {
			break
		}

		history = append(history, cloneVersionRow(trail[i]))
	}

	return history, nil
}

// GetVersion loads one version record by its (asset, sequence) identity.
func (m *MemStore) GetVersion(_ context.Context, assetID uuid.UUID, sequence uint) (store.VersionRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return store.VersionRow{}, m.failure
	}

	for _, row := range m.versions[assetID] {
		if row.Sequence == sequence {
			return cloneVersionRow(row), nil
		}
	}

	return store.VersionRow{}, core.ErrNotFound
}

// GetStudent loads one student by ID.
func (m *MemStore) GetStudent(_ context.Context, studentID uuid.UUID) (core.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return core.Student{}, m.failure
	}

	student, ok := m.students[studentID]
	if !ok {
		return core.Student{}, core.ErrNotFound
	}

	return student, nil
}

// FindStudentByNationalID loads one student by national ID.
func (m *MemStore) FindStudentByNationalID(_ context.Context, nationalID string) (core.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return core.Student{}, m.failure
	}

	for _, student := range m.students {
		if student.NationalID == nationalID {
			return student, nil
		}
	}

	return core.Student{}, core.ErrNotFound
}

// InsertStudent registers a student, enforcing national ID and card number
// uniqueness.
func (m *MemStore) InsertStudent(_ context.Context, student core.Student) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}

	if _, exists := m.students[student.ID]; exists {
		return store.ErrDuplicateKey
	}

	for _, existing := range m.students {
		if existing.NationalID == student.NationalID {
			return store.ErrDuplicateKey
		}

		if student.CardNumber != "" && existing.CardNumber == student.CardNumber {
			return store.ErrDuplicateKey
		}
	}

	m.students[student.ID] = student

	return nil
}

// GetLoan loads one loan by ID.
func (m *MemStore) GetLoan(_ context.Context, loanID uuid.UUID) (core.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return core.Loan{}, m.failure
	}

	loan, ok := m.loans[loanID]
	if !ok {
		return core.Loan{}, core.ErrNotFound
	}

	return loan, nil
}

// FindActiveLoanForAsset loads the single ACTIVE loan of an asset.
func (m *MemStore) FindActiveLoanForAsset(_ context.Context, assetID uuid.UUID) (core.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return core.Loan{}, m.failure
	}

	loan, ok := m.activeLoanLocked(assetID)
	if !ok {
		return core.Loan{}, core.ErrNotFound
	}

	return loan, nil
}

// OpenLoan appends an ACTIVE loan, guarded by the absence of any other ACTIVE
// loan for the same asset.
func (m *MemStore) OpenLoan(_ context.Context, loan core.Loan) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}

	if _, taken := m.activeLoanLocked(loan.AssetID); taken {
		return store.ErrConcurrencyConflict
	}

	m.loans[loan.ID] = loan

	return nil
}

// CloseLoan flips one ACTIVE loan to RETURNED.
func (m *MemStore) CloseLoan(_ context.Context, loanID uuid.UUID, note string, returnedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}

	return m.closeLoanLocked(loanID, note, returnedAt)
}

// UpgradeLoan closes the in-library loan and opens its replacement atomically.
func (m *MemStore) UpgradeLoan(
	_ context.Context,
	closeID uuid.UUID,
	closeNote string,
	returnedAt time.Time,
	replacement core.Loan,
) error {

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return m.failure
	}

	if closeErr := m.closeLoanLocked(closeID, closeNote, returnedAt); closeErr != nil {
		return closeErr
	}

	if _, taken := m.activeLoanLocked(replacement.AssetID); taken {
		return store.ErrConcurrencyConflict
	}

	m.loans[replacement.ID] = replacement

	return nil
}

// ActiveLoans returns all ACTIVE loans, soonest due first.
func (m *MemStore) ActiveLoans(_ context.Context) ([]core.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return nil, m.failure
	}

	active := make([]core.Loan, 0)

	for _, loan := range m.loans {
		if loan.IsActive() {
			active = append(active, loan)
		}
	}

	slices.SortFunc(active, func(a, b core.Loan) int {
		return a.DueAt.Compare(b.DueAt)
	})

	return active, nil
}

// LoansForStudent returns all loans of one student, newest first.
func (m *MemStore) LoansForStudent(_ context.Context, studentID uuid.UUID) ([]core.Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failure != nil {
		return nil, m.failure
	}

	loans := make([]core.Loan, 0)

	for _, loan := range m.loans {
		if loan.StudentID == studentID {
			loans = append(loans, loan)
		}
	}

	slices.SortFunc(loans, func(a, b core.Loan) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return loans, nil
}

func (m *MemStore) activeLoanLocked(assetID uuid.UUID) (core.Loan, bool) {
	for _, loan := range m.loans {
		if loan.AssetID == assetID && loan.IsActive() {
			return loan, true
		}
	}

	return core.Loan{}, false
}

func (m *MemStore) closeLoanLocked(loanID uuid.UUID, note string, returnedAt time.Time) error {
	loan, ok := m.loans[loanID]
	if !ok || !loan.IsActive() {
		return store.ErrConcurrencyConflict
	}

	loan.State = core.LoanStateReturned
	loan.ReturnedAt = &returnedAt

	if note != "" {
		loan.Note = note
	}

	m.loans[loanID] = loan

	return nil
}

func (m *MemStore) codeTakenLocked(code string, selfID uuid.UUID) bool {
	for id, row := range m.assets {
		if id != selfID && row.Code != nil && *row.Code == code {
			return true
		}
	}

	return false
}

func cloneAssetRow(row store.AssetRow) store.AssetRow {
	clone := row
	clone.Snapshot = slices.Clone(row.Snapshot)

	if row.Code != nil {
		code := *row.Code
		clone.Code = &code
	}

	if row.DeletedAt != nil {
		deletedAt := *row.DeletedAt
		clone.DeletedAt = &deletedAt
	}

	return clone
}

func cloneVersionRow(row store.VersionRow) store.VersionRow {
	clone := row
	clone.Snapshot = slices.Clone(row.Snapshot)

	return clone
}
