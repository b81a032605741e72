package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/winrydberg/alumni-backend/internal/app/models"
	"github.com/winrydberg/alumni-backend/internal/db"
	"github.com/winrydberg/alumni-backend/internal/pkg/apperrors"
)

// In-memory fakes for the store interfaces. They keep just enough state to
// exercise the service logic without a database.

type fakeTxManager struct{}

func (f *fakeTxManager) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeUserStore) add(user *models.User) *models.User {
	if user.ID == 0 {
		user.ID = f.nextID
	}
	if user.ID >= f.nextID {
		f.nextID = user.ID + 1
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.add(user)
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserStore) GetAll(_ context.Context, search string, isApproved, isActive *bool, page, pageSize int) ([]*models.User, int64, error) {
	out := []*models.User{}
	for _, u := range f.users {
		if isApproved != nil && u.IsApproved != *isApproved {
			continue
		}
		if isActive != nil && u.IsActive != *isActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(search)) {
			continue
		}
		copied := *u
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserStore) GetPendingApproval(_ context.Context, page, pageSize int) ([]*models.User, int64, error) {
	out := []*models.User{}
	for _, u := range f.users {
		if u.RoleType == models.RoleAlumni && !u.IsApproved && u.RejectedAt == nil {
			copied := *u
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeUserStore) UpdateProfile(_ context.Context, user *models.User) error {
	stored, ok := f.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	*stored = *user
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = &passwordHash
	return nil
}

func (f *fakeUserStore) UpdateLastLogin(_ context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	now := time.Now()
	user.LastLoginAt = &now
	return nil
}

func (f *fakeUserStore) SetVerified(_ context.Context, userID int64) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsVerified = true
	return nil
}

func (f *fakeUserStore) ApproveTx(_ context.Context, _ pgx.Tx, userID int64, passwordHash *string, approvedAt time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsApproved = true
	user.IsActive = true
	user.ApprovedAt = &approvedAt
	user.RejectedAt = nil
	user.RejectionReason = nil
	if passwordHash != nil {
		user.Password = passwordHash
	}
	return nil
}

func (f *fakeUserStore) Reject(_ context.Context, userID int64, reason string, rejectedAt time.Time) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = false
	user.RejectionReason = &reason
	user.RejectedAt = &rejectedAt
	return nil
}

func (f *fakeUserStore) SetActive(_ context.Context, userID int64, active bool) error {
	user, ok := f.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = active
	return nil
}

type fakeMembershipStore struct {
	rows   map[int64]*models.ChapterMembership
	nextID int64
}

func newFakeMembershipStore() *fakeMembershipStore {
	return &fakeMembershipStore{rows: map[int64]*models.ChapterMembership{}, nextID: 1}
}

func (f *fakeMembershipStore) GetPrimaryActive(_ context.Context, userID int64) (*models.ChapterMembership, error) {
	for _, m := range f.rows {
		if m.UserID == userID && m.IsPrimary && m.Status == models.MembershipActive {
			copied := *m
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotAMember
}

func (f *fakeMembershipStore) HasPrimaryActive(_ context.Context, userID int64) (bool, error) {
	for _, m := range f.rows {
		if m.UserID == userID && m.IsPrimary && m.Status == models.MembershipActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMembershipStore) FindByUserAndChapter(_ context.Context, userID, chapterID int64) (*models.ChapterMembership, error) {
	for _, m := range f.rows {
		if m.UserID == userID && m.ChapterID == chapterID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeMembershipStore) GetAllByUser(_ context.Context, userID int64) ([]*models.ChapterMembership, error) {
	out := []*models.ChapterMembership{}
	for _, m := range f.rows {
		if m.UserID == userID {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeMembershipStore) DemoteAllPrimariesTx(_ context.Context, _ pgx.Tx, userID int64) error {
	for _, m := range f.rows {
		if m.UserID == userID && m.IsPrimary {
			m.IsPrimary = false
			m.Status = models.MembershipInactive
		}
	}
	return nil
}

func (f *fakeMembershipStore) InsertTx(_ context.Context, _ pgx.Tx, m *models.ChapterMembership) error {
	for _, existing := range f.rows {
		if existing.UserID == m.UserID && existing.ChapterID == m.ChapterID {
			return apperrors.ErrAlreadyMember
		}
	}
	m.ID = f.nextID
	f.nextID++
	m.JoinedAt = time.Now()
	m.CreatedAt = m.JoinedAt
	m.UpdatedAt = m.JoinedAt
	copied := *m
	f.rows[m.ID] = &copied
	return nil
}

func (f *fakeMembershipStore) ReactivateTx(_ context.Context, _ pgx.Tx, membershipID int64) error {
	m, ok := f.rows[membershipID]
	if !ok {
		return apperrors.ErrNotAMember
	}
	m.IsPrimary = true
	m.Status = models.MembershipActive
	m.JoinedAt = time.Now()
	return nil
}

func (f *fakeMembershipStore) Deactivate(_ context.Context, userID, chapterID int64) error {
	for _, m := range f.rows {
		if m.UserID == userID && m.ChapterID == chapterID && m.Status == models.MembershipActive {
			m.IsPrimary = false
			m.Status = models.MembershipInactive
			return nil
		}
	}
	return apperrors.ErrNotAMember
}

// activePrimaryCount reports how many active primary rows a user has,
// used to assert the single-primary invariant
func (f *fakeMembershipStore) activePrimaryCount(userID int64) int {
	count := 0
	for _, m := range f.rows {
		if m.UserID == userID && m.IsPrimary && m.Status == models.MembershipActive {
			count++
		}
	}
	return count
}

type fakeChapterStore struct {
	chapters    map[int64]*models.Chapter
	memberships *fakeMembershipStore
	nextID      int64
}

func newFakeChapterStore(memberships *fakeMembershipStore) *fakeChapterStore {
	return &fakeChapterStore{
		chapters:    map[int64]*models.Chapter{},
		memberships: memberships,
		nextID:      1,
	}
}

func (f *fakeChapterStore) add(chapter *models.Chapter) *models.Chapter {
	if chapter.ID == 0 {
		chapter.ID = f.nextID
	}
	if chapter.ID >= f.nextID {
		f.nextID = chapter.ID + 1
	}
	f.chapters[chapter.ID] = chapter
	return chapter
}

func (f *fakeChapterStore) Create(_ context.Context, chapter *models.Chapter) error {
	for _, c := range f.chapters {
		if strings.EqualFold(c.Code, chapter.Code) {
			return apperrors.ErrChapterCodeExists
		}
	}
	chapter.CreatedAt = time.Now()
	chapter.UpdatedAt = chapter.CreatedAt
	f.add(chapter)
	return nil
}

func (f *fakeChapterStore) GetByID(_ context.Context, id int64) (*models.Chapter, error) {
	chapter, ok := f.chapters[id]
	if !ok {
		return nil, apperrors.ErrChapterNotFound
	}
	copied := *chapter
	return &copied, nil
}

func (f *fakeChapterStore) GetByUUID(_ context.Context, chapterUUID string) (*models.Chapter, error) {
	for _, c := range f.chapters {
		if c.ChapterUUID == chapterUUID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperrors.ErrChapterNotFound
}

func (f *fakeChapterStore) ExistsByCode(_ context.Context, code string, excludeID int64) (bool, error) {
	for _, c := range f.chapters {
		if strings.EqualFold(c.Code, code) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChapterStore) ExistsByCountryCode(_ context.Context, countryCode string) (bool, error) {
	for _, c := range f.chapters {
		if c.CountryCode == countryCode {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChapterStore) GetAll(_ context.Context, search, countryCode, chapterType string, isActive *bool, page, pageSize int) ([]*models.Chapter, int64, error) {
	out := []*models.Chapter{}
	for _, c := range f.chapters {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		if countryCode != "" && c.CountryCode != countryCode {
			continue
		}
		if chapterType != "" && string(c.Type) != chapterType {
			continue
		}
		if isActive != nil && c.IsActive != *isActive {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeChapterStore) GetActiveByCountry(_ context.Context, countryCode string, chapterType models.ChapterType, city string) ([]*models.Chapter, error) {
	out := []*models.Chapter{}
	for _, c := range f.chapters {
		if !c.IsActive || c.CountryCode != countryCode {
			continue
		}
		if chapterType != "" && c.Type != chapterType {
			continue
		}
		if city != "" && (c.City == nil || !strings.EqualFold(*c.City, city)) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeChapterStore) GetAvailableByResidence(_ context.Context, countryCode, city string) ([]*models.Chapter, error) {
	out := []*models.Chapter{}
	for _, c := range f.chapters {
		if !c.IsActive || c.CountryCode != countryCode {
			continue
		}
		if city != "" && c.Type == models.ChapterTypeCity && (c.City == nil || !strings.EqualFold(*c.City, city)) {
			continue
		}
		copied := *c
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeChapterStore) Update(_ context.Context, chapter *models.Chapter) error {
	stored, ok := f.chapters[chapter.ID]
	if !ok {
		return apperrors.ErrChapterNotFound
	}
	*stored = *chapter
	return nil
}

func (f *fakeChapterStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.chapters[id]; !ok {
		return apperrors.ErrChapterNotFound
	}
	delete(f.chapters, id)
	return nil
}

func (f *fakeChapterStore) HasActiveMembers(_ context.Context, chapterID int64) (bool, error) {
	if f.memberships == nil {
		return false, nil
	}
	for _, m := range f.memberships.rows {
		if m.ChapterID == chapterID && m.Status == models.MembershipActive {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChapterStore) GetMembers(_ context.Context, chapterID int64, page, pageSize int) ([]*models.ChapterMembership, int64, error) {
	out := []*models.ChapterMembership{}
	if f.memberships == nil {
		return out, 0, nil
	}
	for _, m := range f.memberships.rows {
		if m.ChapterID == chapterID {
			copied := *m
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeChapterStore) GetStatistics(_ context.Context) (int64, int64, int64, map[string]int64, error) {
	var total, active, memberships int64
	byChapter := map[string]int64{}
	for _, c := range f.chapters {
		total++
		if c.IsActive {
			active++
		}
		byChapter[c.Name] = 0
	}
	if f.memberships != nil {
		for _, m := range f.memberships.rows {
			if m.Status != models.MembershipActive {
				continue
			}
			memberships++
			if c, ok := f.chapters[m.ChapterID]; ok {
				byChapter[c.Name]++
			}
		}
	}
	return total, active, memberships, byChapter, nil
}

type fakeConfigurationStore struct {
	configs map[string]*models.CountryChapterConfiguration
	nextID  int64
}

func newFakeConfigurationStore() *fakeConfigurationStore {
	return &fakeConfigurationStore{configs: map[string]*models.CountryChapterConfiguration{}, nextID: 1}
}

func (f *fakeConfigurationStore) GetByCountryCode(_ context.Context, countryCode string) (*models.CountryChapterConfiguration, error) {
	cfg, ok := f.configs[countryCode]
	if !ok || !cfg.IsActive {
		return nil, apperrors.ErrConfigurationNotFound
	}
	copied := *cfg
	return &copied, nil
}

func (f *fakeConfigurationStore) GetByID(_ context.Context, id int64) (*models.CountryChapterConfiguration, error) {
	for _, cfg := range f.configs {
		if cfg.ID == id {
			copied := *cfg
			return &copied, nil
		}
	}
	return nil, apperrors.ErrConfigurationNotFound
}

func (f *fakeConfigurationStore) GetAll(_ context.Context) ([]*models.CountryChapterConfiguration, error) {
	out := []*models.CountryChapterConfiguration{}
	for _, cfg := range f.configs {
		copied := *cfg
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeConfigurationStore) Upsert(_ context.Context, cfg *models.CountryChapterConfiguration) error {
	if existing, ok := f.configs[cfg.CountryCode]; ok {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
	} else {
		cfg.ID = f.nextID
		f.nextID++
		cfg.CreatedAt = time.Now()
	}
	cfg.UpdatedAt = time.Now()
	copied := *cfg
	f.configs[cfg.CountryCode] = &copied
	return nil
}

func (f *fakeConfigurationStore) Delete(_ context.Context, id int64) error {
	for code, cfg := range f.configs {
		if cfg.ID == id {
			delete(f.configs, code)
			return nil
		}
	}
	return apperrors.ErrConfigurationNotFound
}

type fakeDonationStore struct {
	donations map[int64]*models.Donation
	payments  *fakePaymentStore
	nextID    int64
}

func newFakeDonationStore(payments *fakePaymentStore) *fakeDonationStore {
	return &fakeDonationStore{
		donations: map[int64]*models.Donation{},
		payments:  payments,
		nextID:    1,
	}
}

func (f *fakeDonationStore) add(donation *models.Donation) *models.Donation {
	if donation.ID == 0 {
		donation.ID = f.nextID
	}
	if donation.ID >= f.nextID {
		f.nextID = donation.ID + 1
	}
	f.donations[donation.ID] = donation
	return donation
}

// raised sums the completed payments of a campaign, mirroring the
// derived column the repository computes
func (f *fakeDonationStore) raised(donationID int64) float64 {
	if f.payments == nil {
		return 0
	}
	var sum float64
	for _, p := range f.payments.rows {
		if p.DonationID == donationID && p.Status == models.PaymentCompleted {
			sum += p.Amount
		}
	}
	return sum
}

func (f *fakeDonationStore) Create(_ context.Context, donation *models.Donation) error {
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = donation.CreatedAt
	f.add(donation)
	return nil
}

func (f *fakeDonationStore) GetByID(_ context.Context, id int64) (*models.Donation, error) {
	donation, ok := f.donations[id]
	if !ok {
		return nil, apperrors.ErrDonationNotFound
	}
	copied := *donation
	copied.TotalRaised = f.raised(id)
	return &copied, nil
}

func (f *fakeDonationStore) GetByUUID(_ context.Context, donationUUID string) (*models.Donation, error) {
	for _, d := range f.donations {
		if d.DonationUUID == donationUUID {
			copied := *d
			copied.TotalRaised = f.raised(d.ID)
			return &copied, nil
		}
	}
	return nil, apperrors.ErrDonationNotFound
}

func (f *fakeDonationStore) GetAll(_ context.Context, search, category string, isActive *bool, page, pageSize int) ([]*models.Donation, int64, error) {
	out := []*models.Donation{}
	for _, d := range f.donations {
		if search != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(search)) {
			continue
		}
		if category != "" && (d.Category == nil || *d.Category != category) {
			continue
		}
		if isActive != nil && d.IsActive != *isActive {
			continue
		}
		copied := *d
		copied.TotalRaised = f.raised(d.ID)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsFeatured != out[j].IsFeatured {
			return out[i].IsFeatured
		}
		return out[i].ID > out[j].ID
	})
	return out, int64(len(out)), nil
}

func (f *fakeDonationStore) GetFeatured(_ context.Context, limit int) ([]*models.Donation, error) {
	out := []*models.Donation{}
	for _, d := range f.donations {
		if !d.IsActive || !d.IsFeatured {
			continue
		}
		copied := *d
		copied.TotalRaised = f.raised(d.ID)
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDonationStore) Update(_ context.Context, donation *models.Donation) error {
	stored, ok := f.donations[donation.ID]
	if !ok {
		return apperrors.ErrDonationNotFound
	}
	*stored = *donation
	return nil
}

func (f *fakeDonationStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.donations[id]; !ok {
		return apperrors.ErrDonationNotFound
	}
	delete(f.donations, id)
	return nil
}

func (f *fakeDonationStore) GetStatistics(_ context.Context) (int64, int64, float64, int64, map[string]float64, error) {
	var total, active, completed int64
	var raised float64
	byCategory := map[string]float64{}
	for _, d := range f.donations {
		total++
		if d.IsActive {
			active++
		}
		category := "other"
		if d.Category != nil {
			category = *d.Category
		}
		byCategory[category] += f.raised(d.ID)
	}
	if f.payments != nil {
		for _, p := range f.payments.rows {
			if p.Status == models.PaymentCompleted {
				completed++
				raised += p.Amount
			}
		}
	}
	return total, active, raised, completed, byCategory, nil
}

type fakePaymentStore struct {
	rows      map[string]*models.Payment
	donations *fakeDonationStore
	nextID    int64
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{rows: map[string]*models.Payment{}, nextID: 1}
}

func (f *fakePaymentStore) Create(_ context.Context, payment *models.Payment) error {
	payment.ID = f.nextID
	f.nextID++
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = payment.CreatedAt
	copied := *payment
	copied.Donation = nil
	f.rows[payment.PaymentReference] = &copied
	return nil
}

func (f *fakePaymentStore) GetByReference(_ context.Context, reference string) (*models.Payment, error) {
	p, ok := f.rows[reference]
	if !ok {
		return nil, apperrors.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePaymentStore) GetByUser(_ context.Context, userID int64, page, pageSize int) ([]*models.Payment, int64, error) {
	out := []*models.Payment{}
	for _, p := range f.rows {
		if p.UserID == nil || *p.UserID != userID {
			continue
		}
		copied := *p
		if f.donations != nil {
			if d, ok := f.donations.donations[p.DonationID]; ok {
				donation := *d
				copied.Donation = &donation
			}
		}
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakePaymentStore) UpdateStatus(_ context.Context, reference string, status models.PaymentStatus, transactionID *string) error {
	p, ok := f.rows[reference]
	if !ok {
		return apperrors.ErrPaymentNotFound
	}
	p.Status = status
	if status == models.PaymentCompleted {
		now := time.Now()
		p.PaidAt = &now
	}
	if transactionID != nil {
		p.TransactionID = transactionID
	}
	return nil
}

type fakeHallStore struct {
	halls []*models.Hall
}

func (f *fakeHallStore) GetActive(_ context.Context, search, gender string) ([]*models.Hall, error) {
	out := []*models.Hall{}
	for _, h := range f.halls {
		if !h.IsActive {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(h.Name), strings.ToLower(search)) &&
			!strings.Contains(strings.ToLower(h.HallCode), strings.ToLower(search)) {
			continue
		}
		if gender != "" && string(h.Gender) != gender {
			continue
		}
		copied := *h
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

var errFakeEmail = errors.New("smtp unavailable")

type sentEmail struct {
	kind    string
	to      string
	payload string
}

type fakeEmailService struct {
	sent []sentEmail
	fail bool
}

func (f *fakeEmailService) record(kind, to, payload string) error {
	if f.fail {
		return errFakeEmail
	}
	f.sent = append(f.sent, sentEmail{kind: kind, to: to, payload: payload})
	return nil
}

func (f *fakeEmailService) SendVerificationEmail(toEmail, _, token string) error {
	return f.record("verification", toEmail, token)
}

func (f *fakeEmailService) SendRegistrationPendingEmail(toEmail, _ string) error {
	return f.record("pending", toEmail, "")
}

func (f *fakeEmailService) SendApprovalEmail(toEmail, _ string, generatedPassword string) error {
	return f.record("approval", toEmail, generatedPassword)
}

func (f *fakeEmailService) SendRejectionEmail(toEmail, _, reason string) error {
	return f.record("rejection", toEmail, reason)
}

func (f *fakeEmailService) SendPasswordResetEmail(toEmail, _, token string) error {
	return f.record("reset", toEmail, token)
}

type fakeTokenStore struct {
	refresh map[string]int64
	verify  map[string]int64
	reset   map[string]int64
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{
		refresh: map[string]int64{},
		verify:  map[string]int64{},
		reset:   map[string]int64{},
	}
}

func (f *fakeTokenStore) SaveRefreshToken(_ context.Context, token string, userID int64, _ time.Duration) error {
	f.refresh[token] = userID
	return nil
}

func (f *fakeTokenStore) ConsumeRefreshToken(_ context.Context, token string) (int64, error) {
	userID, ok := f.refresh[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	delete(f.refresh, token)
	return userID, nil
}

func (f *fakeTokenStore) DeleteRefreshToken(_ context.Context, token string) error {
	delete(f.refresh, token)
	return nil
}

func (f *fakeTokenStore) SaveVerificationToken(_ context.Context, token string, userID int64, _ time.Duration) error {
	f.verify[token] = userID
	return nil
}

func (f *fakeTokenStore) ConsumeVerificationToken(_ context.Context, token string) (int64, error) {
	userID, ok := f.verify[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	delete(f.verify, token)
	return userID, nil
}

func (f *fakeTokenStore) SavePasswordResetToken(_ context.Context, token string, userID int64, _ time.Duration) error {
	f.reset[token] = userID
	return nil
}

func (f *fakeTokenStore) ConsumePasswordResetToken(_ context.Context, token string) (int64, error) {
	userID, ok := f.reset[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	delete(f.reset, token)
	return userID, nil
}
