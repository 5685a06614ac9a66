package differ

import (
	"github.com/erraggy/schemadiff/internal/maputil"
	"github.com/erraggy/schemadiff/parser"
)

// compareOperation diffs one HTTP method present in both documents: its
// parameters, its JSON request body schema and its JSON response schemas.
func compareOperation(path, method string, source, target *parser.Operation) []Change {
	opPath := "paths." + path + "." + method
	changes := compareParameters(opPath, method, path, source.Parameters, target.Parameters)

	if source.RequestBody != nil || target.RequestBody != nil {
		changes = append(changes, compareSchema(opPath+".requestBody", source.RequestBody, target.RequestBody)...)
	}

	for _, status := range maputil.UnionKeys(source.Responses, target.Responses) {
		sResp, tResp := source.Responses[status], target.Responses[status]
		if sResp == nil && tResp == nil {
			continue
		}
		changes = append(changes, compareSchema(opPath+".responses."+status, sResp, tResp)...)
	}
	return changes
}
