package curriculum

// ResolveOrder returns the display order for a new syllabus unit or topic.
// Zero means "unset": the entry goes after the current last sibling, or
// first when the parent has no children yet. An explicit positive order is
// kept as-is. This runs once, before the first persistence of the entity.
func ResolveOrder(explicit, siblingMax int) int {
	if explicit > 0 {
		return explicit
	}
	return siblingMax + 1
}
