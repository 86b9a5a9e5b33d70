package dao

import (
	"bytes"
	"context"
	"os"

	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/fileurl"
	"github.com/haierkeys/bonsai-keeper/pkg/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// noteRepository 实现 domain.NoteRepository 接口，笔记以 YAML 文件存储
type noteRepository struct {
	logger *zap.Logger
}

// NewNoteRepository 创建 NoteRepository 实例
func NewNoteRepository(lg *zap.Logger) domain.NoteRepository {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &noteRepository{logger: lg}
}

// 确保 noteRepository 实现了 domain.NoteRepository 接口
var _ domain.NoteRepository = (*noteRepository)(nil)

// Load 读取笔记文档，文件不存在时返回 found=false
func (r *noteRepository) Load(ctx context.Context, path string) (*domain.NoteDocument, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(err, "read note %s failed", path)
	}

	doc, err := DecodeNote(data)
	if err != nil {
		return nil, false, errors.Wrapf(err, "parse note %s failed", path)
	}
	return doc, true, nil
}

// Save 原子写入笔记文档
func (r *noteRepository) Save(ctx context.Context, path string, doc *domain.NoteDocument) error {
	data, err := EncodeNote(doc)
	if err != nil {
		return errors.Wrap(err, "encode note failed")
	}
	if err := fileurl.WriteFileAtomic(path, data, 0644); err != nil {
		return errors.Wrapf(err, "write note %s failed", path)
	}
	r.logger.Debug("note saved", zap.String(logger.FieldPath, path))
	return nil
}

// Delete 删除笔记文档，不存在时忽略
func (r *noteRepository) Delete(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "remove note %s failed", path)
	}
	return nil
}

// EncodeNote serializes a document as an ordered YAML mapping of category to list
// EncodeNote 将文档序列化为保持顺序的 YAML 映射
func EncodeNote(doc *domain.NoteDocument) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if doc != nil {
		for _, c := range doc.Categories {
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, n := range c.Notes {
				seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n})
			}
			root.Content = append(root.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Name},
				seq,
			)
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeNote reads a document written by EncodeNote. JSON objects of the same
// shape are accepted too, since every JSON document is valid YAML.
// DecodeNote 解析 EncodeNote 的输出，同结构的 JSON 也可解析
func DecodeNote(data []byte) (*domain.NoteDocument, error) {
	doc := &domain.NoteDocument{Categories: []domain.NoteCategory{}}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	// 空文件
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	m := root.Content[0]
	if m.Kind == yaml.ScalarNode && m.Tag == "!!null" {
		return doc, nil
	}
	if m.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: note document must be a mapping", m.Line)
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		c := doc.Open(key.Value)
		switch {
		case val.Kind == yaml.SequenceNode:
			for _, item := range val.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, errors.Errorf("line %d: note in %q must be text", item.Line, key.Value)
				}
				c.Notes = append(c.Notes, item.Value)
			}
		case val.Kind == yaml.ScalarNode && val.Tag == "!!null":
		default:
			return nil, errors.Errorf("line %d: category %q must be a list", val.Line, key.Value)
		}
	}
	return doc, nil
}
