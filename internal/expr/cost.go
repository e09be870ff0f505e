package expr

import "github.com/solatis/graphfilter/internal/filter"

/*
 * Cost model for per-node filter evaluation.
 *
 * The estimate is what Matches spends on one node, in abstract units:
 *
 *   leaf        fixed cost per variant (constants below)
 *   and/or/not  sum of the children, ignoring short-circuit
 *   linked      CostLinkScan + LinkFanout * cost(link filter)
 *   key/target  CostEdgeStep + cost(node filter)
 *
 * LinkFanout is the assumed number of outgoing links visited per node, so
 * every nested linked level multiplies the cost by 8. The number is only
 * meaningful relative to other plans; Explain reports it next to the plan.
 */

const (
	// Leaf costs
	CostConstant = 0
	CostUnique   = 1
	CostID       = 5
	CostText     = 10

	// Link traversal
	CostLinkScan = 16
	CostEdgeStep = 2
	LinkFanout   = 8
)

// Cost estimates the per-node evaluation cost of f.
func Cost(f *filter.DataFilter) int {
	switch f.Kind() {
	case filter.DataAny, filter.DataNone:
		return CostConstant
	case filter.DataUnique:
		return CostUnique
	case filter.DataID, filter.DataNotID:
		return CostID
	case filter.DataText:
		return CostText
	case filter.DataAnd:
		return sumCost(f.Conjunction().Items(), Cost)
	case filter.DataOr:
		return sumCost(f.Disjunction().Items(), Cost)
	case filter.DataNot:
		return Cost(f.Negation().Inner())
	case filter.DataLinked:
		return CostLinkScan + LinkFanout*LinkCost(f.Links())
	default:
		return CostConstant
	}
}

// LinkCost estimates the per-link evaluation cost of f.
func LinkCost(f *filter.LinkFilter) int {
	switch f.Kind() {
	case filter.LinkAny, filter.LinkNone:
		return CostConstant
	case filter.LinkKey, filter.LinkTarget:
		return CostEdgeStep + Cost(f.Node())
	case filter.LinkAnd:
		return sumCost(f.Conjunction().Items(), LinkCost)
	case filter.LinkOr:
		return sumCost(f.Disjunction().Items(), LinkCost)
	case filter.LinkNot:
		return LinkCost(f.Negation().Inner())
	default:
		return CostConstant
	}
}

func sumCost[F any](items []F, cost func(F) int) int {
	total := 0
	for _, item := range items {
		total += cost(item)
	}
	return total
}
