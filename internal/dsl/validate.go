package dsl

// Validate resolves enum references and checks visibility consistency in a
// single forward pass over the declaration order: an enum must be declared
// before the first metric that references it, and an enum referenced by a
// public metric must itself be public. Inline value lists have no separate
// identity and are exempt.
//
// Validation aborts on the first failure; on success it returns the enum
// definitions indexed by name for later stages.
func Validate(f *File) (map[string]*EnumDef, error) {
	enums := make(map[string]*EnumDef)
	for _, item := range f.Items {
		if item.Enum != nil {
			enums[item.Enum.Name] = item.Enum
			continue
		}

		metric := item.Metric
		for _, label := range metric.Labels {
			if label.EnumRef == "" {
				continue
			}
			enum, ok := enums[label.EnumRef]
			if !ok {
				return nil, &UndefinedEnumError{Enum: label.EnumRef, Metric: metric.Name}
			}
			if metric.Public && !enum.Public {
				return nil, &VisibilityError{Enum: enum.Name, Metric: metric.Name}
			}
		}
	}
	return enums, nil
}
