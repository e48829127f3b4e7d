package solver

import (
	"slices"
	"testing"
)

func TestBuildWeights(t *testing.T) {
	g := testGraph()

	tests := []struct {
		aspect Aspect
		want   float64
	}{
		{"aer", 1},
		{"perditio", 1},
		{"lux", 2},
		{"vacuos", 2},
		{"tenebrae", 4},
		{"victus", 2},
		{"herba", 3},
	}
	for _, tt := range tests {
		got, ok := g.Weight(tt.aspect)
		if !ok {
			t.Errorf("Weight(%s) missing", tt.aspect)
			continue
		}
		if got != tt.want {
			t.Errorf("Weight(%s) = %v, want %v", tt.aspect, got, tt.want)
		}
	}
}

func TestBuildCompoundWeightIsRecipeSum(t *testing.T) {
	g := testGraph()
	for _, c := range g.Compound() {
		var sum float64
		for _, comp := range g.Recipe(c) {
			w, _ := g.Weight(comp)
			sum += w
		}
		if w, _ := g.Weight(c); w != sum {
			t.Errorf("Weight(%s) = %v, want component sum %v", c, w, sum)
		}
	}
}

func TestBuildPrimalWeightUnaffectedByPreference(t *testing.T) {
	g := testGraph()
	pref := NewPreferred(g.Primal()...)
	for _, p := range g.Primal() {
		if w, _ := g.Weight(p); w != 1 {
			t.Errorf("Weight(%s) = %v, want 1", p, w)
		}
		if got := g.EffectiveWeight(p, pref); got != 0 {
			t.Errorf("EffectiveWeight(%s) with preference = %v, want 0", p, got)
		}
		if got := g.EffectiveWeight(p, Preferred{}); got != 1 {
			t.Errorf("EffectiveWeight(%s) = %v, want 1", p, got)
		}
	}
}

func TestBuildCycleContributesZero(t *testing.T) {
	tests := []struct {
		name     string
		recipes  Recipes
		compound []Aspect
		want     map[Aspect]float64
	}{
		{
			name:     "self reference",
			recipes:  Recipes{"s": {"s", "p"}},
			compound: []Aspect{"s"},
			want:     map[Aspect]float64{"s": 1},
		},
		{
			name:     "mutual recursion",
			recipes:  Recipes{"a": {"b", "p"}, "b": {"a", "p"}},
			compound: []Aspect{"a", "b"},
			want:     map[Aspect]float64{"a": 2, "b": 1},
		},
		{
			name:     "pure cycle",
			recipes:  Recipes{"a": {"b"}, "b": {"a"}},
			compound: []Aspect{"a", "b"},
			want:     map[Aspect]float64{"a": 0, "b": 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Build(tt.recipes, []Aspect{"p"}, tt.compound)
			for a, want := range tt.want {
				if got, _ := g.Weight(a); got != want {
					t.Errorf("Weight(%s) = %v, want %v", a, got, want)
				}
			}
		})
	}
}

func TestBuildConnections(t *testing.T) {
	g := testGraph()

	for _, a := range g.Aspects() {
		if g.Neighbors(a) == nil {
			t.Errorf("Neighbors(%s) = nil, want an adjacency list", a)
		}
	}

	if got, want := g.Neighbors("lux"), []Aspect{"aer", "ignis", "tenebrae"}; !slices.Equal(got, want) {
		t.Errorf("Neighbors(lux) = %v, want %v", got, want)
	}
	if !g.Connected("aer", "lux") || !g.Connected("lux", "aer") {
		t.Error("edges should be symmetric")
	}
	if g.Connected("aer", "ignis") {
		t.Error("primal aspects should not be connected to each other")
	}
}

func TestBuildDeclaredAspectWithoutEdges(t *testing.T) {
	g := Build(Recipes{}, []Aspect{"lonely"}, nil)
	if n := g.Neighbors("lonely"); n == nil || len(n) != 0 {
		t.Errorf("Neighbors(lonely) = %v, want empty non-nil list", n)
	}
	if w, ok := g.Weight("lonely"); !ok || w != 1 {
		t.Errorf("Weight(lonely) = %v, %v", w, ok)
	}
}

func TestBuildDuplicateEdgesPreserved(t *testing.T) {
	g := Build(Recipes{"twin": {"p", "p"}}, []Aspect{"p"}, []Aspect{"twin"})

	if got := g.Neighbors("twin"); !slices.Equal(got, []Aspect{"p", "p"}) {
		t.Errorf("Neighbors(twin) = %v, want [p p]", got)
	}
	if got := g.Neighbors("p"); !slices.Equal(got, []Aspect{"twin", "twin"}) {
		t.Errorf("Neighbors(p) = %v, want [twin twin]", got)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if w, _ := g.Weight("twin"); w != 2 {
		t.Errorf("Weight(twin) = %v, want 2", w)
	}
}

func TestBuildImplicitAspects(t *testing.T) {
	g := Build(Recipes{"c": {"p", "ghost"}, "orphan": {"p", "p"}}, []Aspect{"p"}, []Aspect{"c"})

	for _, a := range []Aspect{"ghost", "orphan"} {
		if g.IsValid(a) {
			t.Errorf("IsValid(%s) = true, want false for undeclared aspect", a)
		}
		if g.Kind(a) != KindImplicit {
			t.Errorf("Kind(%s) = %v, want implicit", a, g.Kind(a))
		}
		if len(g.Neighbors(a)) == 0 {
			t.Errorf("Neighbors(%s) should be created on demand", a)
		}
		if _, ok := g.Weight(a); !ok {
			t.Errorf("Weight(%s) should be computed", a)
		}
	}
	if w, _ := g.Weight("ghost"); w != 0 {
		t.Errorf("Weight(ghost) = %v, want 0", w)
	}
	if w, _ := g.Weight("orphan"); w != 2 {
		t.Errorf("Weight(orphan) = %v, want 2", w)
	}
	if !g.IsValid("p") || !g.IsValid("c") {
		t.Error("declared aspects should be valid")
	}
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
}

func TestGraphEdges(t *testing.T) {
	g := Build(Recipes{"energy": {"fire", "air"}}, []Aspect{"fire", "air"}, []Aspect{"energy"})
	want := []Edge{{A: "air", B: "energy"}, {A: "energy", B: "fire"}}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestKindString(t *testing.T) {
	g := testGraph()
	if got := g.Kind("aer").String(); got != "primal" {
		t.Errorf("Kind(aer) = %s", got)
	}
	if got := g.Kind("lux").String(); got != "compound" {
		t.Errorf("Kind(lux) = %s", got)
	}
	if got := g.Kind("nothing").String(); got != "implicit" {
		t.Errorf("Kind(nothing) = %s", got)
	}
}
