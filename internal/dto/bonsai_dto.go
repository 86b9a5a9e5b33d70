// Package dto Defines data transfer objects rendered by the command line
// Package dto 定义命令行输出使用的数据传输对象
package dto

import (
	"github.com/haierkeys/bonsai-keeper/internal/domain"
	"github.com/haierkeys/bonsai-keeper/pkg/timex"
)

// BonsaiDTO Bonsai data transfer object
// BonsaiDTO 盆景数据传输对象
type BonsaiDTO struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	NextFertilize timex.Date `json:"nextFertilize"`
	LastPruning   timex.Date `json:"lastPruning"`
	LastRepot     timex.Date `json:"lastRepot"`
	LastWiring    timex.Date `json:"lastWiring"`
	NotePath      string     `json:"notePath,omitempty"`
}

// BonsaiVersionDTO One ledger version with the fields it changed
// BonsaiVersionDTO 一条历史版本及其变更字段
type BonsaiVersionDTO struct {
	Seq     int64     `json:"seq"`
	Bonsai  BonsaiDTO `json:"bonsai"`
	Changed []string  `json:"changed"`
}

// NoteCategoryDTO One category of a note document
// NoteCategoryDTO 笔记分类
type NoteCategoryDTO struct {
	Name  string   `json:"name"`
	Notes []string `json:"notes"`
}

// BonsaiDetailDTO A bonsai together with its notes
// BonsaiDetailDTO 盆景及其笔记
type BonsaiDetailDTO struct {
	BonsaiDTO
	Notes []NoteCategoryDTO `json:"notes"`
}

// NewBonsaiDTO 领域对象转 DTO
func NewBonsaiDTO(b *domain.Bonsai) BonsaiDTO {
	return BonsaiDTO{
		ID:            b.ID,
		Name:          b.Name,
		NextFertilize: b.NextFertilize,
		LastPruning:   b.LastPruning,
		LastRepot:     b.LastRepot,
		LastWiring:    b.LastWiring,
		NotePath:      b.NotePath,
	}
}

// NewBonsaiDTOList 批量转换
func NewBonsaiDTOList(records []*domain.Bonsai) []BonsaiDTO {
	out := make([]BonsaiDTO, 0, len(records))
	for _, b := range records {
		out = append(out, NewBonsaiDTO(b))
	}
	return out
}

// NewBonsaiVersionDTOList converts ledger history, comparing each version with the one before it
// NewBonsaiVersionDTOList 转换历史版本，每个版本与前一个版本比较
func NewBonsaiVersionDTOList(versions []*domain.BonsaiVersion) []BonsaiVersionDTO {
	out := make([]BonsaiVersionDTO, 0, len(versions))
	var prev *domain.Bonsai
	for _, v := range versions {
		changed := []string{}
		for _, f := range v.Bonsai.ChangedFields(prev) {
			changed = append(changed, f.String())
		}
		if prev != nil && prev.Name != v.Bonsai.Name {
			changed = append(changed, "name")
		}
		b := v.Bonsai
		out = append(out, BonsaiVersionDTO{Seq: v.Seq, Bonsai: NewBonsaiDTO(&b), Changed: changed})
		prev = &v.Bonsai
	}
	return out
}

// NewBonsaiDetailDTO 盆景和笔记合并
func NewBonsaiDetailDTO(b *domain.Bonsai, doc *domain.NoteDocument) BonsaiDetailDTO {
	d := BonsaiDetailDTO{BonsaiDTO: NewBonsaiDTO(b), Notes: []NoteCategoryDTO{}}
	if doc == nil {
		return d
	}
	for _, c := range doc.Categories {
		notes := c.Notes
		if notes == nil {
			notes = []string{}
		}
		d.Notes = append(d.Notes, NoteCategoryDTO{Name: c.Name, Notes: notes})
	}
	return d
}
