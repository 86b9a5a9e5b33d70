// Package domain 定义领域模型和接口
package domain

import "context"

// BonsaiRepository is the append-only ledger of tree versions
// BonsaiRepository 盆景版本的追加式记录仓储接口
type BonsaiRepository interface {
	// Initialize creates the store and seeds it once; repeated calls change nothing
	// Initialize 创建存储并仅在首次时写入初始数据，重复调用无副作用
	Initialize(ctx context.Context) error

	// LoadCurrent returns the latest version of every id, sorted by id
	// LoadCurrent 返回每个 ID 的最新版本，按 ID 排序
	LoadCurrent(ctx context.Context) ([]*Bonsai, error)

	// Append writes a new immutable version
	// Append 写入一个新的不可变版本
	Append(ctx context.Context, b *Bonsai) error

	// DeleteAllVersions removes every version of id; unknown ids are a no-op
	// DeleteAllVersions 删除该 ID 的全部版本，ID 不存在时不做任何事
	DeleteAllVersions(ctx context.Context, id int64) error

	// NextID allocates an id that has never been used
	// NextID 分配一个从未使用过的 ID
	NextID(ctx context.Context) (int64, error)

	// ListVersions returns every stored version of id, oldest first
	// ListVersions 返回该 ID 的全部版本，按插入顺序
	ListVersions(ctx context.Context, id int64) ([]*BonsaiVersion, error)
}

// NoteRepository stores companion note documents by path
// NoteRepository 按路径存储盆景笔记文档
type NoteRepository interface {
	// Load returns the document at path; found is false when there is none yet
	// Load 读取文档，不存在时 found 为 false
	Load(ctx context.Context, path string) (doc *NoteDocument, found bool, err error)

	// Save replaces the document at path in one atomic write
	// Save 原子地替换文档
	Save(ctx context.Context, path string, doc *NoteDocument) error

	// Delete removes the document; missing documents are a no-op
	// Delete 删除文档，不存在时不做任何事
	Delete(ctx context.Context, path string) error
}
