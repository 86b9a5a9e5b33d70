package domain

// NoteCategory is one heading of a companion note document
// NoteCategory 笔记文档中的一个分类
type NoteCategory struct {
	Name  string
	Notes []string
}

// NoteDocument maps category names to ordered notes, keeping category order
// NoteDocument 分类到有序笔记列表的映射，保持分类顺序
type NoteDocument struct {
	Categories []NoteCategory
}

// Category returns the category called name, or nil
func (d *NoteDocument) Category(name string) *NoteCategory {
	for i := range d.Categories {
		if d.Categories[i].Name == name {
			return &d.Categories[i]
		}
	}
	return nil
}

// Open returns the category called name, appending an empty one when missing
// Open 返回指定分类，不存在时追加一个空分类
func (d *NoteDocument) Open(name string) *NoteCategory {
	if c := d.Category(name); c != nil {
		return c
	}
	d.Categories = append(d.Categories, NoteCategory{Name: name, Notes: []string{}})
	return &d.Categories[len(d.Categories)-1]
}

// Add appends a note to category name
func (d *NoteDocument) Add(name, note string) {
	c := d.Open(name)
	c.Notes = append(c.Notes, note)
}

// Equal compares category order, names and notes; nil and empty note lists are equal
// Equal 比较分类顺序、名称与笔记
func (d *NoteDocument) Equal(o *NoteDocument) bool {
	if d == nil || o == nil {
		return d == o
	}
	if len(d.Categories) != len(o.Categories) {
		return false
	}
	for i, c := range d.Categories {
		oc := o.Categories[i]
		if c.Name != oc.Name || len(c.Notes) != len(oc.Notes) {
			return false
		}
		for j := range c.Notes {
			if c.Notes[j] != oc.Notes[j] {
				return false
			}
		}
	}
	return true
}
