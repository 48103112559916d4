package servers

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen --package=servers --generate=types,server -o server.gen.go openapi.yaml
