package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/manifest"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()

	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755))
		require.NoError(t, os.WriteFile(abs, []byte(content), 0o600))
	}

	return root
}

func TestNPM_NearestAndRootMerged(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"package.json": `{"name": "monorepo", "devDependencies": {"vitest": "^1"}}`,
		"packages/web/package.json": `{
			"name": "@acme/web",
			"dependencies": {"react": "^18"},
			"peerDependencies": {"react-dom": "^18"},
			"optionalDependencies": {"fsevents": "*"}
		}`,
	})

	r := manifest.NewResolver(root, nil)
	set := r.For(ecosystem.JavaScript, "packages/web/src/components")

	assert.True(t, set.Found)

	for _, name := range []string{"monorepo", "vitest", "@acme/web", "react", "react-dom", "fsevents"} {
		assert.True(t, set.Has(name), name)
	}

	assert.False(t, set.Has("lodash"))
}

func TestNPM_MalformedTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"package.json": `{"dependencies": {`,
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.JavaScript, "src")

	assert.False(t, set.Found)
	assert.Empty(t, set.Names)
}

func TestNPM_BOMPrefixed(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"package.json": "\uFEFF" + `{"dependencies": {"express": "4"}}`,
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.JavaScript, "")

	assert.True(t, set.Has("express"))
}

func TestHasInstalled(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"node_modules/left-pad/index.js":        "",
		"node_modules/@types/node/index.d.ts":   "",
		"app/node_modules/local-only/index.js":  "",
		"other/node_modules/elsewhere/index.js": "",
	})

	r := manifest.NewResolver(root, nil)

	assert.True(t, r.HasInstalled("app/src", "left-pad"))
	assert.True(t, r.HasInstalled("app/src", "@types/node"))
	assert.True(t, r.HasInstalled("app", "local-only"))
	assert.False(t, r.HasInstalled("app", "elsewhere"))
	assert.False(t, r.HasInstalled("app", "../other"))
}

func TestPackageName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "lodash", manifest.PackageName("lodash/fp"))
	assert.Equal(t, "@scope/pkg", manifest.PackageName("@scope/pkg/deep/path"))
	assert.Equal(t, "@scope", manifest.PackageName("@scope"))
	assert.Equal(t, "react", manifest.PackageName("react"))
}

func TestGo_NearestModuleAndWorkspace(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"go.work":    "go 1.22\n\nuse (\n\t./svc\n\t./lib\n)\n",
		"svc/go.mod": "module example.com/svc\n\ngo 1.22\n\nrequire github.com/spf13/cobra v1.9.1\n",
		"lib/go.mod": "module example.com/lib\n\ngo 1.22\n",
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.Go, "svc/cmd/server")

	require.True(t, set.Found)
	assert.Equal(t, "example.com/svc", set.ModulePath)
	assert.Equal(t, "svc", set.Modules["example.com/svc"])
	assert.Equal(t, "lib", set.Modules["example.com/lib"])
	assert.True(t, set.Has("github.com/spf13/cobra"))
}

func TestGo_NoModule(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"main.go": "package main\n"})

	set := manifest.NewResolver(root, nil).For(ecosystem.Go, "")

	assert.False(t, set.Found)
	assert.Empty(t, set.ModulePath)
}

func TestRuby_GemfileAndGemspec(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"Gemfile": "source 'https://rubygems.org'\n# gem 'commented'\ngem 'rails', '~> 7.0'\ngem(\"pg\")\n",
		"widget.gemspec": "Gem::Specification.new do |s|\n  s.name = 'widget'\n" +
			"  s.add_dependency 'net-http-persistent'\n  s.add_development_dependency \"rspec\"\nend\n",
		"Gemfile.lock": "GEM\n  specs:\n    activesupport (7.0.1)\n      concurrent-ruby (~> 1.0)\n",
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.Ruby, "lib")

	require.True(t, set.Found)
	assert.True(t, set.HasGem("rails"))
	assert.True(t, set.HasGem("pg"))
	assert.True(t, set.HasGem("widget"))
	assert.True(t, set.HasGem("rspec/core"))
	assert.True(t, set.HasGem("net/http/persistent"))
	assert.True(t, set.HasGem("active_support/core_ext"))
	assert.False(t, set.HasGem("commented"))
	assert.False(t, set.HasGem("sidekiq"))
}

func TestRuby_RailsOnly(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"Gemfile": "gem 'rails'\n"})

	set := manifest.NewResolver(root, nil).For(ecosystem.Ruby, "")

	assert.True(t, set.HasGem("rails"))
	assert.False(t, set.HasGem("nokogiri"))
}

func TestCSharp_PackageReferences(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"App.sln": "",
		"src/Api/Api.csproj": "\uFEFF" + `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.3" />
    <PackageReference Update="Serilog.Sinks.Console" />
    <PackageReference Include="xunit" Version="2.9.0" />
  </ItemGroup>
</Project>`,
		"Directory.Packages.props": `<Project><ItemGroup><PackageVersion Include="Dapper" Version="2.1" /></ItemGroup></Project>`,
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.CSharp, "src/Api/Controllers")

	require.True(t, set.Found)
	assert.True(t, set.HasNamespace("Newtonsoft.Json.Linq"))
	assert.True(t, set.HasNamespace("Serilog"))
	assert.True(t, set.HasNamespace("Dapper"))
	assert.True(t, set.HasNamespace("Xunit"))
	assert.True(t, set.HasNamespace("Xunit.Abstractions"))
	assert.True(t, set.HasNamespace("newtonsoft.json"))
	assert.False(t, set.HasNamespace("AutoMapper"))
}

func TestCSharp_MalformedProject(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"Broken.csproj": "<Project><ItemGroup>"})

	set := manifest.NewResolver(root, nil).For(ecosystem.CSharp, "")

	assert.False(t, set.Found)
}

func TestRust_CargoTables(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"Cargo.toml": `[workspace]
members = ["crates/*"]

[workspace.dependencies]
tokio = { version = "1", features = ["full"] }
`,
		"crates/my-crate/Cargo.toml": `[package]
name = "my-crate"

[lib]
name = "my_lib"

[dependencies]
serde-json = "1"
http-client = { package = "reqwest", version = "0.12" }

[dev-dependencies]
pretty_assertions = "1"

[build-dependencies]
cc = "1"

[target.'cfg(unix)'.dependencies]
nix = "0.29"
`,
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.Rust, "crates/my-crate/src")

	require.True(t, set.Found)

	for _, name := range []string{"tokio", "my_crate", "my_lib", "serde_json", "http_client", "reqwest", "pretty_assertions", "cc", "nix"} {
		assert.True(t, set.Has(name), name)
	}

	assert.False(t, set.Has("my-crate"))
}

func TestRust_MalformedCargo(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"Cargo.toml": "[dependencies\nserde = 1"})

	set := manifest.NewResolver(root, nil).For(ecosystem.Rust, "src")

	assert.False(t, set.Found)
}

func TestJVM_GradleAndCatalog(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"settings.gradle.kts": `rootProject.name = "demo"`,
		"app/build.gradle.kts": `group = "com.example.demo"
dependencies {
    implementation("com.squareup.okhttp3:okhttp:4.12.0")
    testImplementation 'org.junit.jupiter:junit-jupiter'
    compileOnly group: 'org.projectlombok', name: 'lombok', version: '1.18.30'
    implementation(libs.guava)
}`,
		"gradle/libs.versions.toml": `[libraries]
guava = { module = "com.google.guava:guava", version = "33.0.0-jre" }
jackson = { group = "com.fasterxml.jackson.core", name = "jackson-databind", version = "2.17.0" }
kotlinx = "org.jetbrains.kotlinx:kotlinx-coroutines-core:1.8.0"
`,
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.Kotlin, "app/src/main/kotlin")

	require.True(t, set.Found)
	assert.True(t, set.HasGroupPrefix("com.squareup.okhttp3.OkHttpClient"))
	assert.True(t, set.HasGroupPrefix("org.junit.jupiter.api.Test"))
	assert.True(t, set.HasGroupPrefix("org.projectlombok.Data"))
	assert.True(t, set.HasGroupPrefix("com.google.common.collect.ImmutableList"))
	assert.True(t, set.HasGroupPrefix("com.fasterxml.jackson.databind.ObjectMapper"))
	assert.True(t, set.HasGroupPrefix("org.jetbrains.kotlinx.coroutines.launch"))
	assert.True(t, set.HasGroupPrefix("kotlinx.coroutines.launch"))
	assert.False(t, set.HasGroupPrefix("kotlinx.serialization.Serializable"))
	assert.False(t, set.HasGroupPrefix("com.example.demo.Main"))
	assert.False(t, set.HasGroupPrefix("io.ktor.server.Application"))
}

func TestJVM_PomDependencies(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"pom.xml": `<?xml version="1.0"?>
<project>
  <groupId>com.acme</groupId>
  <parent><groupId>org.springframework.boot</groupId></parent>
  <dependencies>
    <dependency><groupId>org.apache.commons</groupId><artifactId>commons-lang3</artifactId></dependency>
    <dependency><groupId>org.jetbrains.kotlinx</groupId><artifactId>kotlinx-datetime</artifactId></dependency>
  </dependencies>
  <dependencyManagement>
    <dependencies>
      <dependency><groupId>io.micrometer</groupId></dependency>
    </dependencies>
  </dependencyManagement>
</project>`,
	})

	set := manifest.NewResolver(root, nil).For(ecosystem.Java, "src/main/java/com/acme")

	require.True(t, set.Found)
	assert.True(t, set.HasGroupPrefix("org.springframework.boot.SpringApplication"))
	assert.True(t, set.HasGroupPrefix("org.apache.commons.lang3.StringUtils"))
	assert.True(t, set.HasGroupPrefix("io.micrometer.core.instrument.Counter"))
	assert.True(t, set.HasGroupPrefix("kotlinx.datetime.Clock"))
	assert.False(t, set.HasGroupPrefix("com.acme.service.Widget"))
}

func TestUnsupportedEcosystemEmpty(t *testing.T) {
	t.Parallel()

	set := manifest.NewResolver(t.TempDir(), nil).For(ecosystem.Python, "")

	assert.False(t, set.Found)
	assert.False(t, set.Has("requests"))
}
