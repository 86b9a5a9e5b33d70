package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/code"
	"github.com/haierkeys/bonsai-keeper/pkg/diff"
	"github.com/haierkeys/bonsai-keeper/pkg/fileurl"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"

	"go.uber.org/zap"
)

// NoteExt is the extension of note documents
const NoteExt = ".yaml"

// legacyNoteExt is the extension used by the first desktop version
const legacyNoteExt = ".json"

// TemplateCategories are the headings of a fresh note document
var TemplateCategories = []string{"Repot", "Pruning", "Wiring"}

const templateBullets = 3

// NoteService 笔记业务接口
type NoteService interface {
	// PathFor derives the note path of a tree name
	// PathFor 根据盆景名称推导笔记路径
	PathFor(name string) string

	// Load returns the note document of b; found is false when b has none yet
	// Load 读取笔记，不存在时 found 为 false
	Load(ctx context.Context, b *domain.Bonsai) (doc *domain.NoteDocument, found bool, err error)

	// Save replaces the note document of b
	// Save 保存笔记
	Save(ctx context.Context, b *domain.Bonsai, doc *domain.NoteDocument) error

	// Delete removes the note document of b, legacy copies included
	// Delete 删除笔记（包括旧版文件）
	Delete(ctx context.Context, b *domain.Bonsai) error

	// Text renders the note document of b, or the empty template when there is none
	// Text 返回笔记文本，不存在时返回模板
	Text(ctx context.Context, b *domain.Bonsai) (string, error)

	// SaveText parses edited text, saves it and returns a line diff against the stored text
	// SaveText 解析编辑后的文本并保存，返回与原文本的差异
	SaveText(ctx context.Context, b *domain.Bonsai, text string) (string, error)
}

// noteService NoteService 实现
type noteService struct {
	noteRepo domain.NoteRepository
	dir      string
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, cfg NotesConfig, lg *zap.Logger) NoteService {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteService{noteRepo: noteRepo, dir: cfg.Dir, logger: lg}
}

// PathFor 根据名称推导笔记路径
func (s *noteService) PathFor(name string) string {
	return filepath.Join(s.dir, fileurl.SanitizeName(name)+NoteExt)
}

// legacyPathFor is where the first desktop version kept notes: spaces replaced, JSON
func (s *noteService) legacyPathFor(name string) string {
	return filepath.Join(s.dir, strings.ReplaceAll(name, " ", "_")+legacyNoteExt)
}

func (s *noteService) pathOf(b *domain.Bonsai) string {
	if b.NotePath != "" {
		return b.NotePath
	}
	return s.PathFor(b.Name)
}

// Load 读取笔记，YAML 不存在时回退到旧版 JSON
func (s *noteService) Load(ctx context.Context, b *domain.Bonsai) (*domain.NoteDocument, bool, error) {
	path := s.pathOf(b)
	doc, found, err := s.noteRepo.Load(ctx, path)
	if err != nil {
		return nil, false, code.ErrorNoteRead.WithDetails(path).WithCause(err)
	}
	if found {
		return doc, true, nil
	}

	legacy := s.legacyPathFor(b.Name)
	doc, found, err = s.noteRepo.Load(ctx, legacy)
	if err != nil {
		return nil, false, code.ErrorNoteRead.WithDetails(legacy).WithCause(err)
	}
	if found {
		s.logger.Info("note read from legacy file",
			zap.Int64(logger.FieldBonsaiID, b.ID),
			zap.String(logger.FieldPath, legacy),
		)
	}
	return doc, found, nil
}

// Save 保存笔记
func (s *noteService) Save(ctx context.Context, b *domain.Bonsai, doc *domain.NoteDocument) error {
	path := s.pathOf(b)
	if err := s.noteRepo.Save(ctx, path, doc); err != nil {
		return code.ErrorNoteWrite.WithDetails(path).WithCause(err)
	}
	return nil
}

// Delete 删除笔记
func (s *noteService) Delete(ctx context.Context, b *domain.Bonsai) error {
	for _, path := range []string{s.pathOf(b), s.legacyPathFor(b.Name)} {
		if err := s.noteRepo.Delete(ctx, path); err != nil {
			return code.ErrorNoteWrite.WithDetails(path).WithCause(err)
		}
	}
	return nil
}

// Text 返回笔记文本
func (s *noteService) Text(ctx context.Context, b *domain.Bonsai) (string, error) {
	doc, found, err := s.Load(ctx, b)
	if err != nil {
		return "", err
	}
	if !found {
		return NoteTemplate(), nil
	}
	return RenderNotes(doc), nil
}

// SaveText 保存编辑后的文本
func (s *noteService) SaveText(ctx context.Context, b *domain.Bonsai, text string) (string, error) {
	before := ""
	doc, found, err := s.Load(ctx, b)
	if err != nil {
		return "", err
	}
	if found {
		before = RenderNotes(doc)
	}

	parsed := ParseNotes(text)
	if err := s.Save(ctx, b, parsed); err != nil {
		return "", err
	}

	after := RenderNotes(parsed)
	added, removed := diff.Stat(before, after)
	s.logger.Info("note saved",
		zap.Int64(logger.FieldBonsaiID, b.ID),
		zap.String(logger.FieldPath, s.pathOf(b)),
		zap.Int("added", added),
		zap.Int("removed", removed),
	)
	return diff.LineDiff(before, after), nil
}

// RenderNotes renders the editable text form: every category header followed by
// its items as indented bullets, each followed by a blank line
// RenderNotes 渲染可编辑的文本形式
func RenderNotes(doc *domain.NoteDocument) string {
	var sb strings.Builder
	if doc == nil {
		return ""
	}
	for _, c := range doc.Categories {
		sb.WriteString(c.Name)
		sb.WriteString(":\n")
		for _, n := range c.Notes {
			sb.WriteString("    • ")
			sb.WriteString(n)
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// NoteTemplate is the text offered for a tree without notes
// NoteTemplate 无笔记时提供的模板
func NoteTemplate() string {
	var sb strings.Builder
	for _, name := range TemplateCategories {
		sb.WriteString(name)
		sb.WriteString(":\n")
		for i := 0; i < templateBullets; i++ {
			sb.WriteString("    • \n\n")
		}
	}
	return sb.String()
}

// ParseNotes reads the editable text form back into a document.
//
// A trimmed line ending in ':' opens a category. Bulleted lines are always items,
// even when they end in ':'. Items lose their bullet marker and every '*'.
// Lines before the first header are dropped, as are items left empty.
// A repeated header reopens the existing category.
//
// ParseNotes 将文本解析为笔记文档
func ParseNotes(text string) *domain.NoteDocument {
	doc := &domain.NoteDocument{Categories: []domain.NoteCategory{}}
	current := ""
	open := false

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		item, bulleted := stripBullet(line)
		if !bulleted && strings.HasSuffix(line, ":") {
			name := strings.TrimSpace(strings.ReplaceAll(strings.TrimSuffix(line, ":"), "*", ""))
			if name == "" {
				continue
			}
			doc.Open(name)
			current, open = name, true
			continue
		}

		if !open {
			continue
		}
		item = strings.TrimSpace(strings.ReplaceAll(item, "*", ""))
		if item == "" {
			continue
		}
		doc.Add(current, item)
	}
	return doc
}

// stripBullet removes one leading bullet marker. '•' may touch the text, '*' and
// '-' need a following space (or nothing) so "-5°C" and "*emphasis*" survive.
func stripBullet(line string) (string, bool) {
	if strings.HasPrefix(line, "•") {
		return strings.TrimSpace(strings.TrimPrefix(line, "•")), true
	}
	for _, m := range []string{"*", "-"} {
		if line == m {
			return "", true
		}
		if strings.HasPrefix(line, m+" ") || strings.HasPrefix(line, m+"\t") {
			return strings.TrimSpace(line[len(m):]), true
		}
	}
	return line, false
}
