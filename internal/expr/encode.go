package expr

import (
	"gopkg.in/yaml.v3"

	"github.com/solatis/graphfilter/internal/filter"
)

// Encode converts a node filter into its generic tree. Decode(Encode(f))
// yields a filter with the same shape as f.
func Encode(f *filter.DataFilter) any {
	switch f.Kind() {
	case filter.DataAny:
		return "any"
	case filter.DataNone:
		return "none"
	case filter.DataUnique:
		return "unique"
	case filter.DataText:
		s, _ := f.TextFilter().Exact()
		return map[string]any{"text": s}
	case filter.DataID:
		return map[string]any{"id": f.Identifier().String()}
	case filter.DataNotID:
		return map[string]any{"not_id": f.Identifier().String()}
	case filter.DataAnd:
		return map[string]any{"and": encodeAll(f.Conjunction().Items(), Encode)}
	case filter.DataOr:
		return map[string]any{"or": encodeAll(f.Disjunction().Items(), Encode)}
	case filter.DataNot:
		return map[string]any{"not": Encode(f.Negation().Inner())}
	case filter.DataLinked:
		return map[string]any{"linked": EncodeLink(f.Links())}
	default:
		return nil
	}
}

// EncodeLink converts a link filter into its generic tree.
func EncodeLink(f *filter.LinkFilter) any {
	switch f.Kind() {
	case filter.LinkAny:
		return "any"
	case filter.LinkNone:
		return "none"
	case filter.LinkKey:
		return map[string]any{"key": Encode(f.Node())}
	case filter.LinkTarget:
		return map[string]any{"target": Encode(f.Node())}
	case filter.LinkAnd:
		return map[string]any{"and": encodeAll(f.Conjunction().Items(), EncodeLink)}
	case filter.LinkOr:
		return map[string]any{"or": encodeAll(f.Disjunction().Items(), EncodeLink)}
	case filter.LinkNot:
		return map[string]any{"not": EncodeLink(f.Negation().Inner())}
	default:
		return nil
	}
}

func encodeAll[F any](items []F, encode func(F) any) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, encode(item))
	}
	return out
}

// Marshal renders f as a YAML document that Parse accepts.
func Marshal(f *filter.DataFilter) ([]byte, error) {
	return yaml.Marshal(Encode(f))
}
