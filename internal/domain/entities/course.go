package entities

// Module is an ordered group of lessons within a course. Modules unlock
// sequentially: a module becomes reachable once every lesson of the
// preceding module is completed.
type Module struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Order     int      `json:"order"` // 1-based position in the course
	LessonIDs []string `json:"lesson_ids"`
}

// Course is the ordered list of modules of a type-rating syllabus.
type Course struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Modules []Module `json:"modules"` // ordered by Module.Order
}

// ModuleByID returns the module with the given ID, or nil.
func (c *Course) ModuleByID(id string) *Module {
	for i := range c.Modules {
		if c.Modules[i].ID == id {
			return &c.Modules[i]
		}
	}
	return nil
}

// LessonCount returns the total number of lessons across all modules.
func (c *Course) LessonCount() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.LessonIDs)
	}
	return total
}
