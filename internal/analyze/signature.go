package analyze

import (
	"go/types"
	"strings"
)

// Signature renders a constructor the way it reads in its own package,
// e.g. "NewVillager(name string, age int) (*Villager, error)".
func (c *CtorInfo) Signature() string {
	qual := types.RelativeTo(c.Func.Pkg())
	sig := c.Func.Type().(*types.Signature)

	var b strings.Builder
	b.WriteString(c.Func.Name())
	b.WriteString(tupleString(sig.Params(), qual))

	res := sig.Results()
	switch res.Len() {
	case 0:
	case 1:
		b.WriteString(" ")
		b.WriteString(types.TypeString(res.At(0).Type(), qual))
	default:
		b.WriteString(" ")
		b.WriteString(tupleString(res, qual))
	}

	return b.String()
}

func tupleString(tuple *types.Tuple, qual types.Qualifier) string {
	parts := make([]string, tuple.Len())
	for i := range tuple.Len() {
		v := tuple.At(i)
		parts[i] = types.TypeString(v.Type(), qual)
		if v.Name() != "" {
			parts[i] = v.Name() + " " + parts[i]
		}
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
