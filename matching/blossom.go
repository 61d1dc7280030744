package matching

// weightedEdge is one undirected edge of the general graph handed to the
// blossom engine. Weights are integral so that all dual updates stay exact.
type weightedEdge struct {
	i, j int
	w    int64
}

// blossomEngine implements Edmonds' weighted matching with blossom
// shrinking/expansion and dual variables, O(V³).
//
// Conventions (shared by every method):
//   - Vertices are 0..nv-1; blossoms are nv..2nv-1. A "top-level" blossom has
//     parent -1. Trivial blossoms are single vertices.
//   - Edge k has two endpoints 2k and 2k+1; endpoint[p] is the vertex at p,
//     and p^1 is the opposite endpoint of the same edge.
//   - label: 0 free, 1 S (outer), 2 T (inner); bit 4 marks blossoms visited
//     by scanBlossom.
//   - Dual variables are stored doubled, so slack(k) = u_i + u_j − 2w_k.
type blossomEngine struct {
	nv, ne int
	edges  []weightedEdge

	endpoint  []int
	neighbend [][]int

	mate             []int
	label            []int
	labelend         []int
	inblossom        []int
	blossomparent    []int
	blossomchilds    [][]int
	blossombase      []int
	blossomendps     [][]int
	bestedge         []int
	blossombestedges [][]int
	unusedblossoms   []int
	dualvar          []int64
	allowedge        []bool
	queue            []int
}

// maxWeightMatching returns mate[v] (or -1) for a maximum-weight matching.
// With maxCardinality it returns a maximum-weight matching among all matchings
// of maximum cardinality.
func maxWeightMatching(nv int, edges []weightedEdge, maxCardinality bool) []int {
	if len(edges) == 0 {
		mate := make([]int, nv)
		for i := range mate {
			mate[i] = -1
		}

		return mate
	}

	e := newBlossomEngine(nv, edges)
	e.run(maxCardinality)

	mate := make([]int, nv)
	for v := 0; v < nv; v++ {
		if e.mate[v] >= 0 {
			mate[v] = e.endpoint[e.mate[v]]
		} else {
			mate[v] = -1
		}
	}

	return mate
}

func newBlossomEngine(nv int, edges []weightedEdge) *blossomEngine {
	ne := len(edges)
	e := &blossomEngine{nv: nv, ne: ne, edges: edges}

	var maxweight int64
	for _, ed := range edges {
		if ed.w > maxweight {
			maxweight = ed.w
		}
	}

	e.endpoint = make([]int, 2*ne)
	for p := 0; p < 2*ne; p++ {
		if p%2 == 0 {
			e.endpoint[p] = edges[p/2].i
		} else {
			e.endpoint[p] = edges[p/2].j
		}
	}
	e.neighbend = make([][]int, nv)
	for k, ed := range edges {
		e.neighbend[ed.i] = append(e.neighbend[ed.i], 2*k+1)
		e.neighbend[ed.j] = append(e.neighbend[ed.j], 2*k)
	}

	e.mate = filled(nv, -1)
	e.label = make([]int, 2*nv)
	e.labelend = filled(2*nv, -1)
	e.inblossom = make([]int, nv)
	for v := range e.inblossom {
		e.inblossom[v] = v
	}
	e.blossomparent = filled(2*nv, -1)
	e.blossomchilds = make([][]int, 2*nv)
	e.blossombase = make([]int, 2*nv)
	for v := 0; v < 2*nv; v++ {
		if v < nv {
			e.blossombase[v] = v
		} else {
			e.blossombase[v] = -1
		}
	}
	e.blossomendps = make([][]int, 2*nv)
	e.bestedge = filled(2*nv, -1)
	e.blossombestedges = make([][]int, 2*nv)
	e.unusedblossoms = make([]int, 0, nv)
	for b := nv; b < 2*nv; b++ {
		e.unusedblossoms = append(e.unusedblossoms, b)
	}
	e.dualvar = make([]int64, 2*nv)
	for v := 0; v < nv; v++ {
		e.dualvar[v] = maxweight
	}
	e.allowedge = make([]bool, ne)

	return e
}

func filled(n, v int) []int {
	s := make([]int, n)
	for i := range s {
		s[i] = v
	}

	return s
}

func (e *blossomEngine) slack(k int) int64 {
	ed := e.edges[k]

	return e.dualvar[ed.i] + e.dualvar[ed.j] - 2*ed.w
}

// leaves appends every vertex contained (recursively) in blossom b.
func (e *blossomEngine) leaves(b int, out []int) []int {
	if b < e.nv {
		return append(out, b)
	}
	for _, t := range e.blossomchilds[b] {
		if t < e.nv {
			out = append(out, t)
		} else {
			out = e.leaves(t, out)
		}
	}

	return out
}

// assignLabel labels w's top-level blossom with t, reached through endpoint p.
func (e *blossomEngine) assignLabel(w, t, p int) {
	b := e.inblossom[w]
	e.label[w], e.label[b] = t, t
	e.labelend[w], e.labelend[b] = p, p
	e.bestedge[w], e.bestedge[b] = -1, -1
	if t == 1 {
		e.queue = e.leaves(b, e.queue)
	} else if t == 2 {
		base := e.blossombase[b]
		e.assignLabel(e.endpoint[e.mate[base]], 1, e.mate[base]^1)
	}
}

// scanBlossom traces back from v and w to find either a new blossom base
// (returned) or an augmenting path (returns -1).
func (e *blossomEngine) scanBlossom(v, w int) int {
	var path []int
	base := -1
	for v != -1 || w != -1 {
		b := e.inblossom[v]
		if e.label[b]&4 != 0 {
			base = e.blossombase[b]

			break
		}
		path = append(path, b)
		e.label[b] = 5
		if e.labelend[b] == -1 {
			v = -1
		} else {
			v = e.endpoint[e.labelend[b]]
			b = e.inblossom[v]
			v = e.endpoint[e.labelend[b]]
		}
		if w != -1 {
			v, w = w, v
		}
	}
	for _, b := range path {
		e.label[b] = 1
	}

	return base
}

// addBlossom shrinks the odd cycle closed by edge k into a new S-blossom with the given base.
func (e *blossomEngine) addBlossom(base, k int) {
	v, w := e.edges[k].i, e.edges[k].j
	bb := e.inblossom[base]
	bv := e.inblossom[v]
	bw := e.inblossom[w]

	b := e.unusedblossoms[len(e.unusedblossoms)-1]
	e.unusedblossoms = e.unusedblossoms[:len(e.unusedblossoms)-1]

	e.blossombase[b] = base
	e.blossomparent[b] = -1
	e.blossomparent[bb] = b

	var path, endps []int
	for bv != bb {
		e.blossomparent[bv] = b
		path = append(path, bv)
		endps = append(endps, e.labelend[bv])
		v = e.endpoint[e.labelend[bv]]
		bv = e.inblossom[v]
	}
	path = append(path, bb)
	reverseInts(path)
	reverseInts(endps)
	endps = append(endps, 2*k)
	for bw != bb {
		e.blossomparent[bw] = b
		path = append(path, bw)
		endps = append(endps, e.labelend[bw]^1)
		w = e.endpoint[e.labelend[bw]]
		bw = e.inblossom[w]
	}
	e.blossomchilds[b] = path
	e.blossomendps[b] = endps

	e.label[b] = 1
	e.labelend[b] = e.labelend[bb]
	e.dualvar[b] = 0

	for _, lv := range e.leaves(b, nil) {
		if e.label[e.inblossom[lv]] == 2 {
			e.queue = append(e.queue, lv)
		}
		e.inblossom[lv] = b
	}

	bestedgeto := filled(2*e.nv, -1)
	for _, sub := range path {
		var nblists [][]int
		if e.blossombestedges[sub] == nil {
			for _, lv := range e.leaves(sub, nil) {
				list := make([]int, 0, len(e.neighbend[lv]))
				for _, p := range e.neighbend[lv] {
					list = append(list, p/2)
				}
				nblists = append(nblists, list)
			}
		} else {
			nblists = [][]int{e.blossombestedges[sub]}
		}
		for _, nblist := range nblists {
			for _, kk := range nblist {
				i, j := e.edges[kk].i, e.edges[kk].j
				if e.inblossom[j] == b {
					i, j = j, i
				}
				_ = i
				bj := e.inblossom[j]
				if bj != b && e.label[bj] == 1 &&
					(bestedgeto[bj] == -1 || e.slack(kk) < e.slack(bestedgeto[bj])) {
					bestedgeto[bj] = kk
				}
			}
		}
		e.blossombestedges[sub] = nil
		e.bestedge[sub] = -1
	}

	best := make([]int, 0)
	for _, kk := range bestedgeto {
		if kk != -1 {
			best = append(best, kk)
		}
	}
	e.blossombestedges[b] = best
	e.bestedge[b] = -1
	for _, kk := range best {
		if e.bestedge[b] == -1 || e.slack(kk) < e.slack(e.bestedge[b]) {
			e.bestedge[b] = kk
		}
	}
}

// expandBlossom dissolves blossom b into its sub-blossoms. During a stage
// (endstage == false) a T-blossom is relabelled along its even path.
func (e *blossomEngine) expandBlossom(b int, endstage bool) {
	for _, s := range e.blossomchilds[b] {
		e.blossomparent[s] = -1
		if s < e.nv {
			e.inblossom[s] = s
		} else if endstage && e.dualvar[s] == 0 {
			e.expandBlossom(s, endstage)
		} else {
			for _, lv := range e.leaves(s, nil) {
				e.inblossom[lv] = s
			}
		}
	}

	if !endstage && e.label[b] == 2 {
		childs := e.blossomchilds[b]
		endps := e.blossomendps[b]
		entrychild := e.inblossom[e.endpoint[e.labelend[b]^1]]
		j := indexOf(childs, entrychild)
		var jstep, endptrick int
		if j&1 != 0 {
			j -= len(childs)
			jstep = 1
			endptrick = 0
		} else {
			jstep = -1
			endptrick = 1
		}
		p := e.labelend[b]
		for j != 0 {
			e.label[e.endpoint[p^1]] = 0
			e.label[e.endpoint[at(endps, j-endptrick)^endptrick^1]] = 0
			e.assignLabel(e.endpoint[p^1], 2, p)
			e.allowedge[at(endps, j-endptrick)/2] = true
			j += jstep
			p = at(endps, j-endptrick) ^ endptrick
			e.allowedge[p/2] = true
			j += jstep
		}
		bv := at(childs, j)
		e.label[e.endpoint[p^1]] = 2
		e.label[bv] = 2
		e.labelend[e.endpoint[p^1]] = p
		e.labelend[bv] = p
		e.bestedge[bv] = -1
		j += jstep
		for at(childs, j) != entrychild {
			bv = at(childs, j)
			if e.label[bv] == 1 {
				j += jstep

				continue
			}
			var found = -1
			for _, lv := range e.leaves(bv, nil) {
				if e.label[lv] != 0 {
					found = lv

					break
				}
			}
			if found != -1 {
				e.label[found] = 0
				e.label[e.endpoint[e.mate[e.blossombase[bv]]]] = 0
				e.assignLabel(found, 2, e.labelend[found])
			}
			j += jstep
		}
	}

	e.label[b] = -1
	e.labelend[b] = -1
	e.blossomchilds[b] = nil
	e.blossomendps[b] = nil
	e.blossombase[b] = -1
	e.blossombestedges[b] = nil
	e.bestedge[b] = -1
	e.unusedblossoms = append(e.unusedblossoms, b)
}

// augmentBlossom swaps matched/unmatched edges inside b along the even path
// from vertex v to the base, making v the new base.
func (e *blossomEngine) augmentBlossom(b, v int) {
	t := v
	for e.blossomparent[t] != b {
		t = e.blossomparent[t]
	}
	if t >= e.nv {
		e.augmentBlossom(t, v)
	}

	childs := e.blossomchilds[b]
	endps := e.blossomendps[b]
	i := indexOf(childs, t)
	j := i
	var jstep, endptrick int
	if i&1 != 0 {
		j -= len(childs)
		jstep = 1
		endptrick = 0
	} else {
		jstep = -1
		endptrick = 1
	}
	for j != 0 {
		j += jstep
		t = at(childs, j)
		p := at(endps, j-endptrick) ^ endptrick
		if t >= e.nv {
			e.augmentBlossom(t, e.endpoint[p])
		}
		j += jstep
		t = at(childs, j)
		if t >= e.nv {
			e.augmentBlossom(t, e.endpoint[p^1])
		}
		e.mate[e.endpoint[p]] = p ^ 1
		e.mate[e.endpoint[p^1]] = p
	}

	e.blossomchilds[b] = rotateInts(childs, i)
	e.blossomendps[b] = rotateInts(endps, i)
	e.blossombase[b] = e.blossombase[e.blossomchilds[b][0]]
}

// augmentMatching flips the augmenting path through edge k.
func (e *blossomEngine) augmentMatching(k int) {
	v, w := e.edges[k].i, e.edges[k].j
	starts := [2][2]int{{v, 2*k + 1}, {w, 2 * k}}
	for _, sp := range starts {
		s, p := sp[0], sp[1]
		for {
			bs := e.inblossom[s]
			if bs >= e.nv {
				e.augmentBlossom(bs, s)
			}
			e.mate[s] = p
			if e.labelend[bs] == -1 {
				break
			}
			t := e.endpoint[e.labelend[bs]]
			bt := e.inblossom[t]
			s = e.endpoint[e.labelend[bt]]
			j := e.endpoint[e.labelend[bt]^1]
			if bt >= e.nv {
				e.augmentBlossom(bt, j)
			}
			e.mate[j] = e.labelend[bt]
			p = e.labelend[bt] ^ 1
		}
	}
}

// run executes up to nv stages; each stage either augments the matching or
// proves that no further augmentation improves the objective.
func (e *blossomEngine) run(maxCardinality bool) {
	nv := e.nv
	for stage := 0; stage < nv; stage++ {
		for i := range e.label {
			e.label[i] = 0
			e.bestedge[i] = -1
		}
		for b := nv; b < 2*nv; b++ {
			e.blossombestedges[b] = nil
		}
		for k := range e.allowedge {
			e.allowedge[k] = false
		}
		e.queue = e.queue[:0]

		for v := 0; v < nv; v++ {
			if e.mate[v] == -1 && e.label[e.inblossom[v]] == 0 {
				e.assignLabel(v, 1, -1)
			}
		}

		augmented := false
		for {
			for len(e.queue) > 0 && !augmented {
				v := e.queue[len(e.queue)-1]
				e.queue = e.queue[:len(e.queue)-1]

				for _, p := range e.neighbend[v] {
					k := p / 2
					w := e.endpoint[p]
					if e.inblossom[v] == e.inblossom[w] {
						continue
					}
					var kslack int64
					if !e.allowedge[k] {
						kslack = e.slack(k)
						if kslack <= 0 {
							e.allowedge[k] = true
						}
					}
					if e.allowedge[k] {
						if e.label[e.inblossom[w]] == 0 {
							e.assignLabel(w, 2, p^1)
						} else if e.label[e.inblossom[w]] == 1 {
							base := e.scanBlossom(v, w)
							if base >= 0 {
								e.addBlossom(base, k)
							} else {
								e.augmentMatching(k)
								augmented = true

								break
							}
						} else if e.label[w] == 0 {
							e.label[w] = 2
							e.labelend[w] = p ^ 1
						}
					} else if e.label[e.inblossom[w]] == 1 {
						b := e.inblossom[v]
						if e.bestedge[b] == -1 || kslack < e.slack(e.bestedge[b]) {
							e.bestedge[b] = k
						}
					} else if e.label[w] == 0 {
						if e.bestedge[w] == -1 || kslack < e.slack(e.bestedge[w]) {
							e.bestedge[w] = k
						}
					}
				}
			}
			if augmented {
				break
			}

			// No augmenting path under the current duals: compute delta.
			deltatype := -1
			var delta int64
			deltaedge, deltablossom := -1, -1

			if !maxCardinality {
				deltatype = 1
				delta = e.dualvar[0]
				for v := 1; v < nv; v++ {
					if e.dualvar[v] < delta {
						delta = e.dualvar[v]
					}
				}
			}
			for v := 0; v < nv; v++ {
				if e.label[e.inblossom[v]] == 0 && e.bestedge[v] != -1 {
					d := e.slack(e.bestedge[v])
					if deltatype == -1 || d < delta {
						delta = d
						deltatype = 2
						deltaedge = e.bestedge[v]
					}
				}
			}
			for b := 0; b < 2*nv; b++ {
				if e.blossomparent[b] == -1 && e.label[b] == 1 && e.bestedge[b] != -1 {
					d := e.slack(e.bestedge[b]) / 2
					if deltatype == -1 || d < delta {
						delta = d
						deltatype = 3
						deltaedge = e.bestedge[b]
					}
				}
			}
			for b := nv; b < 2*nv; b++ {
				if e.blossombase[b] >= 0 && e.blossomparent[b] == -1 && e.label[b] == 2 &&
					(deltatype == -1 || e.dualvar[b] < delta) {
					delta = e.dualvar[b]
					deltatype = 4
					deltablossom = b
				}
			}
			if deltatype == -1 {
				// Max-cardinality reached; final dual adjustment for optimality.
				deltatype = 1
				delta = e.dualvar[0]
				for v := 1; v < nv; v++ {
					if e.dualvar[v] < delta {
						delta = e.dualvar[v]
					}
				}
				if delta < 0 {
					delta = 0
				}
			}

			for v := 0; v < nv; v++ {
				switch e.label[e.inblossom[v]] {
				case 1:
					e.dualvar[v] -= delta
				case 2:
					e.dualvar[v] += delta
				}
			}
			for b := nv; b < 2*nv; b++ {
				if e.blossombase[b] >= 0 && e.blossomparent[b] == -1 {
					switch e.label[b] {
					case 1:
						e.dualvar[b] += delta
					case 2:
						e.dualvar[b] -= delta
					}
				}
			}

			switch deltatype {
			case 1:
				// Optimum reached.
			case 2:
				e.allowedge[deltaedge] = true
				i, j := e.edges[deltaedge].i, e.edges[deltaedge].j
				if e.label[e.inblossom[i]] == 0 {
					i, j = j, i
				}
				_ = j
				e.queue = append(e.queue, i)
			case 3:
				e.allowedge[deltaedge] = true
				e.queue = append(e.queue, e.edges[deltaedge].i)
			case 4:
				e.expandBlossom(deltablossom, false)
			}
			if deltatype == 1 {
				break
			}
		}

		if !augmented {
			break
		}

		for b := nv; b < 2*nv; b++ {
			if e.blossomparent[b] == -1 && e.blossombase[b] >= 0 && e.label[b] == 1 && e.dualvar[b] == 0 {
				e.expandBlossom(b, true)
			}
		}
	}
}

// at indexes s with Python-style negative indices.
func at(s []int, i int) int {
	if i < 0 {
		return s[len(s)+i]
	}

	return s[i]
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}

	return -1
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func rotateInts(s []int, i int) []int {
	out := make([]int, 0, len(s))
	out = append(out, s[i:]...)

	return append(out, s[:i]...)
}
