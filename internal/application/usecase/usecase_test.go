package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/design"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/designcode"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/engine"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/product"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/domain/share"
	"github.com/Zenexus/wardrobe-planner-au-sub001/internal/infrastructure/persistence"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []share.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg share.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func newDesign() *design.Design {
	return &design.Design{
		Name:  "Main bedroom",
		Email: "sam@example.com",
		Room:  design.Room{WidthMM: 2400, HeightMM: 2300, DepthMM: 600},
		Items: []design.PlacedItem{{ProductID: "frame-1000", SwatchID: "oak", Quantity: 2}},
	}
}

func newDesignUseCase(t *testing.T, repo design.Repository, src designcode.Source) *DesignUseCase {
	t.Helper()
	uc := NewDesignUseCase(repo, designcode.NewGenerator(src, designcode.DefaultLength), 0, zaptest.NewLogger(t))
	uc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return uc
}

func TestDesignUseCase_SaveAndResume(t *testing.T) {
	ctx := context.Background()
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))

	d := newDesign()
	require.NoError(t, uc.SaveDesign(ctx, d))

	assert.NotEmpty(t, d.ID)
	assert.Regexp(t, `^W[A-Z0-9]{7}$`, d.Code)
	assert.Equal(t, int64(1700000000), d.CreatedAt)

	got, err := uc.ResumeDesign(ctx, "  "+strings.ToLower(d.Code)+" ")
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, "Main bedroom", got.Name)
}

func TestDesignUseCase_UpdateKeepsCode(t *testing.T) {
	ctx := context.Background()
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))

	d := newDesign()
	require.NoError(t, uc.SaveDesign(ctx, d))
	code, created := d.Code, d.CreatedAt

	uc.now = func() time.Time { return time.Unix(1700000500, 0) }
	update := newDesign()
	update.ID = d.ID
	update.Code = "WOTHER00"
	update.Name = "Renamed"
	require.NoError(t, uc.SaveDesign(ctx, update))

	assert.Equal(t, code, update.Code)
	assert.Equal(t, created, update.CreatedAt)
	assert.Equal(t, int64(1700000500), update.UpdatedAt)
}

func TestDesignUseCase_ClientSuppliedCode(t *testing.T) {
	ctx := context.Background()
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))

	d := newDesign()
	d.Code = "w3k8zq12"
	require.NoError(t, uc.SaveDesign(ctx, d))
	assert.Equal(t, "W3K8ZQ12", d.Code)

	bad := newDesign()
	bad.Code = "X3K8ZQ12"
	assert.ErrorIs(t, uc.SaveDesign(ctx, bad), designcode.ErrInvalidCode)
}

func TestDesignUseCase_RegeneratesOnConflict(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInMemDesignRepository()
	require.NoError(t, repo.Save(ctx, &design.Design{ID: "taken", Code: "WAAAAAAA"}))

	// 第一組代碼為 WAAAAAAA (已被使用)，第二組為 WBBBBBBB
	src := designcode.NewSequenceSource(0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1)
	uc := newDesignUseCase(t, repo, src)

	d := newDesign()
	require.NoError(t, uc.SaveDesign(ctx, d))
	assert.Equal(t, "WBBBBBBB", d.Code)
}

func TestDesignUseCase_CodeExhausted(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInMemDesignRepository()
	require.NoError(t, repo.Save(ctx, &design.Design{ID: "taken", Code: "WAAAAAAA"}))

	uc := newDesignUseCase(t, repo, designcode.NewSequenceSource(0))
	err := uc.SaveDesign(ctx, newDesign())
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestDesignUseCase_RejectsInvalidDesign(t *testing.T) {
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))
	d := newDesign()
	d.Room.WidthMM = 0
	assert.ErrorIs(t, uc.SaveDesign(context.Background(), d), design.ErrInvalidDesign)
}

func TestDesignUseCase_ResumeErrors(t *testing.T) {
	ctx := context.Background()
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))

	_, err := uc.ResumeDesign(ctx, "hello")
	assert.ErrorIs(t, err, designcode.ErrInvalidCode)

	_, err = uc.ResumeDesign(ctx, "W"+strings.Repeat("A", designcode.MaxLength))
	assert.ErrorIs(t, err, designcode.ErrInvalidCode)

	// 長度與目前設定不同的代碼仍會查詢 Repository
	_, err = uc.ResumeDesign(ctx, "WABC")
	assert.ErrorIs(t, err, design.ErrNotFound)

	_, err = uc.ResumeDesign(ctx, "WZZZZZZZ")
	assert.ErrorIs(t, err, design.ErrNotFound)
}

func TestDesignUseCase_ResumeAfterLengthChange(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewInMemDesignRepository()

	before := newDesignUseCase(t, repo, designcode.NewStrongSource(nil))
	d := newDesign()
	require.NoError(t, before.SaveDesign(ctx, d))
	require.Len(t, d.Code, designcode.DefaultLength)

	after := NewDesignUseCase(repo, designcode.NewGenerator(designcode.NewStrongSource(nil), 10), 0, zaptest.NewLogger(t))

	got, err := after.ResumeDesign(ctx, d.Code)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	mailer := &recordingMailer{}
	require.NoError(t, NewShareUseCase(after, mailer, "https://plan.example", nil).
		ShareDesign(ctx, d.Code, share.Request{To: "alex@example.com"}))
	assert.Len(t, mailer.sent, 1)

	fresh := newDesign()
	require.NoError(t, after.SaveDesign(ctx, fresh))
	assert.Len(t, fresh.Code, 10)
}

func TestDesignUseCase_SaveWithIssuedCode(t *testing.T) {
	ctx := context.Background()
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))

	code := uc.NewCode(12)
	d := newDesign()
	d.Code = code
	require.NoError(t, uc.SaveDesign(ctx, d))
	assert.Equal(t, code, d.Code)

	got, err := uc.ResumeDesign(ctx, code)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	tooLong := newDesign()
	tooLong.Code = "W" + strings.Repeat("Q", designcode.MaxLength)
	assert.ErrorIs(t, uc.SaveDesign(ctx, tooLong), designcode.ErrInvalidCode)
}

func TestDesignUseCase_NewCode(t *testing.T) {
	uc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewSequenceSource(2))
	assert.Equal(t, "W", uc.NewCode(0))
	assert.Equal(t, "W", uc.NewCode(-4))
	assert.Equal(t, "WCC", uc.NewCode(3))
	assert.Equal(t, designcode.DefaultLength, uc.CodeLength())
	assert.Equal(t, "WCCCCCCC", uc.NewCode(uc.CodeLength()))
}

func TestProductUseCase_ListProducts(t *testing.T) {
	ctx := context.Background()
	uc := NewProductUseCase(persistence.NewInMemProductRepository())

	all, err := uc.ListProducts(ctx, "")
	require.NoError(t, err)
	assert.NotEmpty(t, all)

	doors, err := uc.ListProducts(ctx, "door")
	require.NoError(t, err)
	for _, p := range doors {
		assert.Equal(t, product.Door, p.Category)
	}

	_, err = uc.ListProducts(ctx, "sofa")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = uc.GetProduct(ctx, "nope")
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestQuoteUseCase(t *testing.T) {
	ctx := context.Background()
	designs := persistence.NewInMemDesignRepository()
	products := persistence.NewInMemProductRepository()
	duc := newDesignUseCase(t, designs, designcode.NewStrongSource(nil))

	d := newDesign()
	require.NoError(t, duc.SaveDesign(ctx, d))

	uc := NewQuoteUseCase(engine.NewSimpleEngine(designs, products))
	q, err := uc.Quote(ctx, strings.ToLower(d.Code))
	require.NoError(t, err)
	assert.Equal(t, int64(2*21900), q.TotalCents)

	_, err = uc.Quote(ctx, "bad code")
	assert.ErrorIs(t, err, designcode.ErrInvalidCode)
}

func TestShareUseCase_ShareDesign(t *testing.T) {
	ctx := context.Background()
	duc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))
	d := newDesign()
	require.NoError(t, duc.SaveDesign(ctx, d))

	mailer := &recordingMailer{}
	uc := NewShareUseCase(duc, mailer, "https://plan.example/", zaptest.NewLogger(t))

	require.NoError(t, uc.ShareDesign(ctx, d.Code, share.Request{To: "alex@example.com", SenderName: "Sam"}))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "alex@example.com", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Body, "https://plan.example/resume/"+d.Code)
}

func TestShareUseCase_Errors(t *testing.T) {
	ctx := context.Background()
	duc := newDesignUseCase(t, persistence.NewInMemDesignRepository(), designcode.NewStrongSource(nil))
	d := newDesign()
	require.NoError(t, duc.SaveDesign(ctx, d))

	mailer := &recordingMailer{}
	uc := NewShareUseCase(duc, mailer, "http://localhost:8080", nil)

	err := uc.ShareDesign(ctx, "WZZZZZZZ", share.Request{To: "alex@example.com"})
	assert.ErrorIs(t, err, design.ErrNotFound)

	err = uc.ShareDesign(ctx, d.Code, share.Request{To: "not-an-address"})
	assert.ErrorIs(t, err, share.ErrInvalidRecipient)

	mailer.err = errors.New("smtp down")
	err = uc.ShareDesign(ctx, d.Code, share.Request{To: "alex@example.com"})
	assert.EqualError(t, err, "smtp down")
	assert.Empty(t, mailer.sent)
}
