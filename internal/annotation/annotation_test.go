package annotation

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/mbtgo/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var optionals = cmp.AllowUnexported(model.Optional[string]{}, model.Optional[int]{}, model.Optional[float64]{})

func TestParseVertex(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want Vertex
	}{
		{
			name: "plain label",
			text: "  v_Login \n",
			want: Vertex{Label: "v_Login", FullLabel: "v_Login"},
		},
		{
			name: "flags and free text",
			text: "v_Home\nsome comment\nMERGE\nBLOCKED\nINDEX=42\nREQTAG=R1, R2,,R1",
			want: Vertex{
				Label:     "v_Home",
				FullLabel: "v_Home\nsome comment\nMERGE\nBLOCKED\nINDEX=42\nREQTAG=R1, R2,,R1",
				Merge:     true,
				Blocked:   true,
				Index:     model.Some(42),
				ReqTags:   []string{"R1", "R2"},
			},
		},
		{
			name: "no merge",
			text: "v_Home\nNO_MERGE",
			want: Vertex{Label: "v_Home", FullLabel: "v_Home\nNO_MERGE", NoMerge: true},
		},
		{
			name: "flag token must fill the whole line",
			text: "v_Home\nMERGED later",
			want: Vertex{Label: "v_Home", FullLabel: "v_Home\nMERGED later"},
		},
		{
			name: "start marker is a legal vertex label",
			text: "Start",
			want: Vertex{Label: "Start", FullLabel: "Start"},
		},
		{
			name: "repeated identical index",
			text: "v_A\nINDEX=3\nINDEX=3",
			want: Vertex{Label: "v_A", FullLabel: "v_A\nINDEX=3\nINDEX=3", Index: model.Some(3)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseVertex(tc.text, "m.graphml")

			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, optionals); diff != "" {
				t.Errorf("ParseVertex() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseVertex_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		text    string
		wantMsg string
	}{
		{name: "empty", text: "   ", wantMsg: "vertex is missing its label"},
		{name: "empty first line", text: "\n\nMERGE", wantMsg: "vertex is missing its label"},
		{name: "whitespace", text: "v Login", wantMsg: "vertex label contains whitespace"},
		{name: "keyword", text: "MERGE", wantMsg: "vertex label is a reserved keyword"},
		{name: "bad index", text: "v_A\nINDEX=abc", wantMsg: "INDEX is not a correct positive integer value"},
		{name: "conflicting index", text: "v_A\nINDEX=1\nINDEX=2", wantMsg: "conflicting INDEX values"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseVertex(tc.text, "m.graphml")

			require.Error(t, err)
			var pe *model.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.wantMsg, pe.Msg)
			assert.Equal(t, "m.graphml", pe.File)
		})
	}
}

func TestParseEdge(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
		want Edge
	}{
		{
			name: "empty text",
			text: "",
			want: Edge{},
		},
		{
			name: "label only",
			text: "e_Go",
			want: Edge{FullLabel: "e_Go", Label: model.Some("e_Go")},
		},
		{
			name: "label parameter guard and actions",
			text: "e_Login user [x>0] / x=0; y++",
			want: Edge{
				FullLabel: "e_Login user [x>0] / x=0; y++",
				Label:     model.Some("e_Login"),
				Parameter: model.Some("user"),
				Guard:     model.Some("x>0"),
				Actions:   model.Some("x=0; y++"),
			},
		},
		{
			name: "slash inside guard is not an action",
			text: "e_Div [a/b>1]",
			want: Edge{FullLabel: "e_Div [a/b>1]", Label: model.Some("e_Div"), Guard: model.Some("a/b>1")},
		},
		{
			name: "actions without label",
			text: "/ x=1",
			want: Edge{FullLabel: "/ x=1", Actions: model.Some("x=1")},
		},
		{
			name: "annotated empty actions",
			text: "e_A /",
			want: Edge{FullLabel: "e_A /", Label: model.Some("e_A"), Actions: model.Some("")},
		},
		{
			name: "guard without label",
			text: "[ready]",
			want: Edge{FullLabel: "[ready]", Guard: model.Some("ready")},
		},
		{
			name: "flag lines",
			text: "e_A\nweight=0.25\nBLOCKED\nBACKTRACK\nINDEX=7\nREQTAG=R9",
			want: Edge{
				FullLabel: "e_A\nweight=0.25\nBLOCKED\nBACKTRACK\nINDEX=7\nREQTAG=R9",
				Label:     model.Some("e_A"),
				Weight:    model.Some(0.25),
				Blocked:   true,
				Backtrack: true,
				Index:     model.Some(7),
				ReqTags:   []string{"R9"},
			},
		},
		{
			name: "leading empty line keeps the label absent",
			text: "\nINDEX=12",
			want: Edge{FullLabel: "\nINDEX=12", Index: model.Some(12)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseEdge(tc.text, "m.graphml")

			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got, optionals); diff != "" {
				t.Errorf("ParseEdge() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEdge_WeightParseFailure(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"lots", "NaN", "nan", "Inf", "+Inf", "-Inf", "-3", "-0.5", "1e400"} {
		t.Run(value, func(t *testing.T) {
			t.Parallel()

			_, err := ParseEdge("e_Go\nweight="+value, "shop.graphml")

			require.Error(t, err)
			var pe *model.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "e_Go", pe.Entity)
			assert.Equal(t, value, pe.Value)
			assert.Equal(t, "shop.graphml", pe.File)
			assert.Contains(t, err.Error(), "weight is not a correct float value")
		})
	}
}

func TestParseEdge_WeightBounds(t *testing.T) {
	t.Parallel()

	for _, value := range []float64{0, 0.25, 1} {
		e, err := ParseEdge(fmt.Sprintf("e_Go\nweight=%g", value), "shop.graphml")

		require.NoError(t, err)
		assert.Equal(t, model.Some(value), e.Weight)
	}
}

func TestParseEdge_ReservedLabel(t *testing.T) {
	t.Parallel()

	for _, text := range []string{"BLOCKED", "Start", "INDEX=3", "Stop now"} {
		_, err := ParseEdge(text, "m.graphml")

		var pe *model.ParseError
		require.True(t, errors.As(err, &pe), text)
		assert.Equal(t, "edge label is a reserved keyword", pe.Msg, text)
	}
}
