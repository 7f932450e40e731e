package sgf

import "testing"

func TestSerializeOrdersPropertiesAndVariations(t *testing.T) {
	root := &Node{Properties: map[string][]string{
		"SZ": {"9"},
		"FF": {"4"},
		"XX": {"kept"},
		"AP": {"editor"},
	}}
	first := NewNode()
	first.Add("B", "ee")
	first.Add("C", "a [tricky] comment")

	alt := NewNode()
	alt.Add("W", "cc")
	main := NewNode()
	main.Add("W", "gg")

	s := &SGF{Root: &GameTree{
		Nodes: []Node{*root, *first},
		Children: []*GameTree{
			{Nodes: []Node{*main}},
			{Nodes: []Node{*alt}},
		},
	}}

	want := `(;FF[4]SZ[9]AP[editor]XX[kept];C[a [tricky\] comment]B[ee](;W[gg])(;W[cc]))`
	if got := Serialize(s); got != want {
		t.Fatalf("serialize mismatch.\n got: %s\nwant: %s", got, want)
	}
}

func TestSerializeEmpty(t *testing.T) {
	if got := Serialize(&SGF{}); got != "()" {
		t.Fatalf("expected (), got %s", got)
	}
}
