package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		method string
		want   Method
	}{
		// canonical names
		{"initialize", MethodInitialize},
		{"tools/list", MethodListTools},
		{"tools/call", MethodCallTool},

		// case and whitespace tolerance
		{"  Tools/List  ", MethodListTools},
		{"LIST_TOOLS", MethodListTools},
		{"Initialize", MethodInitialize},
		{" TOOLS/CALL ", MethodCallTool},

		// aliases
		{"list_tools", MethodListTools},
		{"tools_list", MethodListTools},
		{"tool/call", MethodCallTool},
		{"call_tool", MethodCallTool},
		{"tools/execute", MethodCallTool},
		{"execute_tool", MethodCallTool},

		// substring heuristics
		{"my_list_method", MethodListTools},
		{"manifest", MethodListTools},
		{"get_manifest", MethodListTools},
		{"do_call_thing", MethodCallTool},
		{"executeSomething", MethodCallTool},

		// a method matching both heuristics resolves to call_tool
		{"call_list", MethodCallTool},
		{"list_and_execute", MethodCallTool},

		// no match
		{"ping", MethodUnrecognized},
		{"", MethodUnrecognized},
		{"notifications/initialized", MethodUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.method))
		})
	}
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "initialize", MethodInitialize.String())
	assert.Equal(t, "list_tools", MethodListTools.String())
	assert.Equal(t, "call_tool", MethodCallTool.String())
	assert.Equal(t, "unrecognized", MethodUnrecognized.String())
}
