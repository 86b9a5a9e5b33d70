package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"
	"github.com/haierkeys/bonsai-keeper/pkg/validator"

	"go.uber.org/zap"
)

// CreateBonsaiParams input of Session.Create
// CreateBonsaiParams 新建盆景参数
type CreateBonsaiParams struct {
	Name      string `validate:"required,max=64" label:"name"`
	Purchased string `validate:"required,ddmmyyyy" label:"purchased"`
}

// Session owns one working set, its baseline and a cursor over it.
// It is not safe for concurrent use.
// Session 持有工作集、基线快照与当前游标，非并发安全
type Session struct {
	bonsaiRepo domain.BonsaiRepository
	notes      NoteService
	schedule   Schedule
	validate   *validator.Validator
	logger     *zap.Logger
	today      func() timex.Date

	ws       *WorkingSet
	baseline *WorkingSet
	cursor   int
}

// SessionOption 会话选项
type SessionOption func(*Session)

// WithClock replaces the wall clock used for "today"
func WithClock(today func() timex.Date) SessionOption {
	return func(s *Session) { s.today = today }
}

// WithValidator sets the validator used by Create
func WithValidator(v *validator.Validator) SessionOption {
	return func(s *Session) { s.validate = v }
}

// NewSession 创建会话
func NewSession(bonsaiRepo domain.BonsaiRepository, notes NoteService, schedule Schedule, lg *zap.Logger, opts ...SessionOption) *Session {
	if lg == nil {
		lg = zap.NewNop()
	}
	s := &Session{
		bonsaiRepo: bonsaiRepo,
		notes:      notes,
		schedule:   schedule,
		logger:     lg,
		today:      timex.Today,
		ws:         NewWorkingSet(nil),
		baseline:   NewWorkingSet(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open initializes the ledger, loads the current trees and takes the baseline
// Open 初始化记录库，加载当前盆景并建立基线
func (s *Session) Open(ctx context.Context) error {
	if err := s.bonsaiRepo.Initialize(ctx); err != nil {
		return code.ErrorStorageUnavailable.WithCause(err)
	}
	return s.Reload(ctx)
}

// Reload discards unsaved edits and loads the ledger again
// Reload 放弃未保存的修改并重新加载
func (s *Session) Reload(ctx context.Context) error {
	records, err := s.bonsaiRepo.LoadCurrent(ctx)
	if err != nil {
		return code.ErrorDBQuery.WithCause(err)
	}
	for _, r := range records {
		r.NotePath = s.notes.PathFor(r.Name)
	}

	ws := NewWorkingSet(records)
	baseline, err := ws.Snapshot()
	if err != nil {
		return err
	}
	s.ws, s.baseline, s.cursor = ws, baseline, 0

	s.logger.Debug("session loaded", zap.Int(logger.FieldCount, ws.Len()))
	return nil
}

// WorkingSet exposes the editable records
func (s *Session) WorkingSet() *WorkingSet {
	return s.ws
}

// Baseline exposes the last persisted state
func (s *Session) Baseline() *WorkingSet {
	return s.baseline
}

// Schedule returns the scheduling rules of the session
func (s *Session) Schedule() Schedule {
	return s.schedule
}

// Notes returns the note service of the session
func (s *Session) Notes() NoteService {
	return s.notes
}

// Today 返回会话使用的当天日期
func (s *Session) Today() timex.Date {
	return s.today()
}

// Dirty reports whether the working set differs from the baseline
// Dirty 工作集是否有未保存的修改
func (s *Session) Dirty() bool {
	for _, r := range s.ws.Records() {
		if b, ok := s.baseline.Get(r.ID); !ok || !r.SameState(b) {
			return true
		}
	}
	return false
}

// Current returns the record under the cursor
// Current 返回游标所指记录
func (s *Session) Current() (*domain.Bonsai, error) {
	if s.ws.Len() == 0 {
		return nil, code.ErrorEmptyWorkingSet
	}
	return s.ws.At(s.cursor), nil
}

// Next moves the cursor forward, wrapping to the first record
func (s *Session) Next() (*domain.Bonsai, error) {
	return s.move(1)
}

// Prev moves the cursor back, wrapping to the last record
func (s *Session) Prev() (*domain.Bonsai, error) {
	return s.move(-1)
}

func (s *Session) move(step int) (*domain.Bonsai, error) {
	n := s.ws.Len()
	if n == 0 {
		return nil, code.ErrorEmptyWorkingSet
	}
	s.cursor = ((s.cursor+step)%n + n) % n
	return s.ws.At(s.cursor), nil
}

// Seek moves the cursor to the record referenced by id or name
// Seek 将游标移动到指定 ID 或名称的记录
func (s *Session) Seek(ref string) (*domain.Bonsai, error) {
	b, err := s.Resolve(ref)
	if err != nil {
		return nil, err
	}
	s.cursor = s.ws.Index(b.ID)
	return b, nil
}

// Resolve finds a record by id or name without moving the cursor
func (s *Session) Resolve(ref string) (*domain.Bonsai, error) {
	b, ok := s.ws.Lookup(ref)
	if !ok {
		return nil, code.ErrorBonsaiNotFound.WithDetails(ref)
	}
	return b, nil
}

// Advance marks action as done today on the record under the cursor
// Advance 将养护操作标记为今天完成
func (s *Session) Advance(action domain.Action) (*domain.Bonsai, error) {
	b, err := s.Current()
	if err != nil {
		return nil, err
	}
	return s.AdvanceID(b.ID, action)
}

// AdvanceID marks action as done today on tree id. Fertilizing uses the working-set
// value of the last repot, so an unsaved repot is honored.
func (s *Session) AdvanceID(id int64, action domain.Action) (*domain.Bonsai, error) {
	b, ok := s.ws.Get(id)
	if !ok {
		return nil, code.ErrorBonsaiNotFound.WithDetails(strconv.FormatInt(id, 10))
	}
	today := s.today()
	f, ok := s.schedule.Advance(b, action, today)
	if !ok {
		return nil, code.ErrorInvalidParams.WithDetails("unknown action " + string(action))
	}

	s.logger.Info("maintenance recorded",
		zap.Int64(logger.FieldBonsaiID, b.ID),
		zap.String(logger.FieldAction, string(action)),
		zap.String(logger.FieldField, f.String()),
		zap.String(logger.FieldDate, b.Get(f).String()),
	)
	return b, nil
}

// Set edits one date of tree id from raw user input
// Set 根据用户输入修改日期
func (s *Session) Set(id int64, field domain.Field, raw string) error {
	return s.ws.Set(id, field, raw)
}

// Create adds a new tree bought on purchased. The tree is appended to the ledger
// at once and enters both the working set and the baseline.
// Create 新建盆景：立即写入记录库，并加入工作集与基线
func (s *Session) Create(ctx context.Context, name, purchased string) (*domain.Bonsai, error) {
	params := &CreateBonsaiParams{Name: strings.TrimSpace(name), Purchased: strings.TrimSpace(purchased)}
	if s.validate != nil {
		if err := s.validate.Struct(params); err != nil {
			return nil, code.ErrorInvalidParams.WithDetails(err.Error())
		}
	}
	bought, err := timex.ParseDate(params.Purchased)
	if err != nil || !bought.IsSet() {
		return nil, code.ErrorInvalidDate.WithDetails(params.Purchased)
	}
	if params.Name == "" {
		return nil, code.ErrorInvalidParams.WithDetails("name is required")
	}
	// 不同名称可能映射到同一个笔记文件，文件系统可能不区分大小写
	notePath := s.notes.PathFor(params.Name)
	for _, r := range s.ws.Records() {
		if strings.EqualFold(r.Name, params.Name) {
			return nil, code.ErrorBonsaiNameExists.WithDetails(params.Name)
		}
		if strings.EqualFold(s.notes.PathFor(r.Name), notePath) {
			return nil, code.ErrorBonsaiNameExists.WithDetails(params.Name, "notes of "+r.Name+" already use "+notePath)
		}
	}

	id, err := s.bonsaiRepo.NextID(ctx)
	if err != nil {
		return nil, code.ErrorDBWrite.WithCause(err)
	}

	b := &domain.Bonsai{
		ID:            id,
		Name:          params.Name,
		NextFertilize: s.schedule.InitialFertilization(s.today(), bought),
		NotePath:      notePath,
	}
	if err := s.bonsaiRepo.Append(ctx, b); err != nil {
		return nil, code.ErrorDBWrite.WithCause(err)
	}

	base, err := cloneBonsai(b)
	if err != nil {
		return nil, err
	}
	if err := s.ws.Add(b); err != nil {
		return nil, err
	}
	if err := s.baseline.Add(base); err != nil {
		return nil, err
	}
	s.cursor = s.ws.Index(id)

	s.logger.Info("bonsai created",
		zap.Int64(logger.FieldBonsaiID, id),
		zap.String(logger.FieldName, b.Name),
		zap.String(logger.FieldDate, b.NextFertilize.String()),
	)
	return b, nil
}

// Delete purges every ledger version of id and its note document, then drops it
// from the working set and the baseline. The cursor lands on the tree now at the
// same position, or on the last one. Unknown ids are a no-op. A note that cannot
// be removed is reported after the tree itself is gone.
// Delete 删除盆景的全部版本及其笔记，游标停在同一位置（越界时为最后一条）
func (s *Session) Delete(ctx context.Context, id int64) error {
	idx := s.ws.Index(id)
	b, inWorkingSet := s.ws.Get(id)

	if err := s.bonsaiRepo.DeleteAllVersions(ctx, id); err != nil {
		return code.ErrorDBWrite.WithCause(err)
	}
	if !inWorkingSet {
		return nil
	}
	// 记录已删除，笔记删除失败时仍从工作集移除，再返回错误
	noteErr := s.notes.Delete(ctx, b)

	s.ws.Remove(id)
	s.baseline.Remove(id)

	switch {
	case s.ws.Len() == 0:
		s.cursor = 0
	case idx >= s.ws.Len():
		s.cursor = s.ws.Len() - 1
	default:
		s.cursor = idx
	}

	if noteErr != nil {
		s.logger.Error("note delete failed",
			zap.Int64(logger.FieldBonsaiID, id),
			zap.Error(noteErr),
		)
		return noteErr
	}

	s.logger.Info("bonsai deleted",
		zap.Int64(logger.FieldBonsaiID, id),
		zap.String(logger.FieldName, b.Name),
	)
	return nil
}

// Save reconciles the working set against the baseline. On success the baseline
// becomes a fresh copy of the working set; on failure it is kept.
// Save 对比工作集与基线并写入变化，成功后刷新基线，失败时保留原基线
func (s *Session) Save(ctx context.Context) ([]int64, error) {
	changed, err := Reconcile(ctx, s.ws, s.baseline, s.bonsaiRepo)
	if err != nil {
		s.logger.Error("save failed",
			zap.Int(logger.FieldCount, len(changed)),
			zap.Error(err),
		)
		return changed, err
	}

	baseline, err := s.ws.Snapshot()
	if err != nil {
		return changed, err
	}
	s.baseline = baseline

	if len(changed) > 0 {
		s.logger.Info("session saved", zap.Int(logger.FieldCount, len(changed)))
	}
	return changed, nil
}

// History lists every stored version of id, oldest first
// History 返回该盆景的全部历史版本
func (s *Session) History(ctx context.Context, id int64) ([]*domain.BonsaiVersion, error) {
	versions, err := s.bonsaiRepo.ListVersions(ctx, id)
	if err != nil {
		return nil, code.ErrorDBQuery.WithCause(err)
	}
	return versions, nil
}

// Due returns the trees whose fertilization date has been reached
func (s *Session) Due() []*domain.Bonsai {
	return s.schedule.Due(s.ws.Records(), s.today())
}
