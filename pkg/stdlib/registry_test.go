package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/stdlib"
)

func TestContains_Go(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"fmt", "os", "C", "net/http", "encoding/json", "math/rand/v2", "crypto/x509/pkix"} {
		assert.True(t, stdlib.Contains(ecosystem.Go, name), name)
	}

	for _, name := range []string{"net/foo", "encoding/yaml", "github.com/org/proj", "utils/helper"} {
		assert.False(t, stdlib.Contains(ecosystem.Go, name), name)
	}
}

func TestContains_JavaScript(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"fs", "fs/promises", "path/posix", "node:test", "node:fs", "bun:sqlite"} {
		assert.True(t, stdlib.Contains(ecosystem.JavaScript, name), name)
	}

	for _, name := range []string{"react", "lodash/get", "@scope/fs"} {
		assert.False(t, stdlib.Contains(ecosystem.JavaScript, name), name)
	}
}

func TestContains_Python(t *testing.T) {
	t.Parallel()

	assert.True(t, stdlib.Contains(ecosystem.Python, "os.path"))
	assert.True(t, stdlib.Contains(ecosystem.Python, "__future__"))
	assert.True(t, stdlib.Contains(ecosystem.Python, "xml.etree.ElementTree"))
	assert.False(t, stdlib.Contains(ecosystem.Python, "requests"))
	assert.False(t, stdlib.Contains(ecosystem.Python, "osutils"))
}

func TestContains_RubyRustDotnet(t *testing.T) {
	t.Parallel()

	assert.True(t, stdlib.Contains(ecosystem.Ruby, "net/http"))
	assert.True(t, stdlib.Contains(ecosystem.Ruby, "json"))
	assert.False(t, stdlib.Contains(ecosystem.Ruby, "rails"))

	assert.True(t, stdlib.Contains(ecosystem.Rust, "std::collections::HashMap"))
	assert.True(t, stdlib.Contains(ecosystem.Rust, "core"))
	assert.False(t, stdlib.Contains(ecosystem.Rust, "serde::Serialize"))

	assert.True(t, stdlib.Contains(ecosystem.CSharp, "System.Collections.Generic"))
	assert.True(t, stdlib.Contains(ecosystem.CSharp, "Microsoft.Extensions.Logging"))
	assert.False(t, stdlib.Contains(ecosystem.CSharp, "Newtonsoft.Json"))
}

func TestContains_JVM(t *testing.T) {
	t.Parallel()

	assert.True(t, stdlib.Contains(ecosystem.Java, "java.util.List"))
	assert.True(t, stdlib.Contains(ecosystem.Java, "org.w3c.dom.Document"))
	assert.True(t, stdlib.Contains(ecosystem.Java, "com.sun.net.httpserver.HttpServer"))
	assert.False(t, stdlib.Contains(ecosystem.Java, "org.w3c.other.Thing"))
	assert.False(t, stdlib.Contains(ecosystem.Java, "kotlin.collections.List"))

	assert.True(t, stdlib.Contains(ecosystem.Kotlin, "kotlin.collections.List"))
	assert.True(t, stdlib.Contains(ecosystem.Kotlin, "java.io.File"))
	assert.True(t, stdlib.Contains(ecosystem.Kotlin, "android.os.Bundle"))
	assert.False(t, stdlib.Contains(ecosystem.Kotlin, "kotlinx.coroutines.flow"))
}

func TestContains_UnknownEcosystem(t *testing.T) {
	t.Parallel()

	assert.Nil(t, stdlib.For(ecosystem.Ecosystem("cobol")))
	assert.False(t, stdlib.Contains(ecosystem.Ecosystem("cobol"), "anything"))
	assert.False(t, stdlib.Contains(ecosystem.Go, ""))
}
