package manifest

import (
	"encoding/xml"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	pomFile        = "pom.xml"
	versionCatalog = "gradle/libs.versions.toml"
)

var (
	gradleBuildFiles    = []string{"build.gradle", "build.gradle.kts"}
	gradleSettingsFiles = []string{"settings.gradle", "settings.gradle.kts"}

	gradleCoordinatePattern = regexp.MustCompile(`['"]([A-Za-z0-9_.\-]+):([A-Za-z0-9_.\-]+)(?::[^'"]*)?['"]`)
	gradleMapGroupPattern   = regexp.MustCompile(`\bgroup\s*:\s*['"]([A-Za-z0-9_.\-]+)['"]`)
)

type pomProject struct {
	Parent struct {
		GroupID string `xml:"groupId"`
	} `xml:"parent"`
	Dependencies         pomDependencies `xml:"dependencies"`
	DependencyManagement struct {
		Dependencies pomDependencies `xml:"dependencies"`
	} `xml:"dependencyManagement"`
}

type pomDependencies struct {
	Items []struct {
		GroupID    string `xml:"groupId"`
		ArtifactID string `xml:"artifactId"`
	} `xml:"dependency"`
}

// jvmScope merges the nearest directory holding a Gradle or Maven build file
// with the root build files and the root version catalog.
func (r *Resolver) jvmScope(dir string) *Set {
	set := newSet()

	for _, d := range ancestors(dir) {
		if nearest := r.jvmManifest(d); nearest != nil {
			set.merge(nearest)

			break
		}
	}

	set.merge(r.jvmManifest(""))

	if data, ok := r.readFile(versionCatalog); ok {
		r.addVersionCatalog(set, data)
	}

	for _, settings := range gradleSettingsFiles {
		if _, ok := r.readFile(settings); ok {
			set.Found = true
		}
	}

	return set
}

// jvmManifest parses the build files of a single directory, or returns nil
// when it has none.
func (r *Resolver) jvmManifest(dir string) *Set {
	return r.jvmFiles.Get(dir, func() *Set {
		set := newSet()

		for _, name := range gradleBuildFiles {
			data, ok := r.readFile(join(dir, name))
			if !ok {
				continue
			}

			set.Found = true
			content := string(data)

			for _, m := range gradleCoordinatePattern.FindAllStringSubmatch(content, -1) {
				addCoordinate(set, m[1], m[2])
			}

			for _, group := range matchAll(gradleMapGroupPattern, content) {
				addGroup(set, group)
			}
		}

		file := join(dir, pomFile)
		if data, ok := r.readFile(file); ok {
			var pom pomProject

			err := xml.Unmarshal(data, &pom)
			if err != nil {
				r.parseFailed(file, err)
			} else {
				set.Found = true
				addGroup(set, pom.Parent.GroupID)

				for _, dep := range pom.Dependencies.Items {
					addCoordinate(set, dep.GroupID, dep.ArtifactID)
				}

				for _, dep := range pom.DependencyManagement.Dependencies.Items {
					addCoordinate(set, dep.GroupID, dep.ArtifactID)
				}
			}
		}

		if !set.Found {
			return nil
		}

		return set
	})
}

func (r *Resolver) addVersionCatalog(set *Set, data []byte) {
	var catalog struct {
		Libraries map[string]any `toml:"libraries"`
	}

	err := toml.Unmarshal(data, &catalog)
	if err != nil {
		r.parseFailed(versionCatalog, err)

		return
	}

	for _, lib := range catalog.Libraries {
		switch v := lib.(type) {
		case string:
			addModule(set, v)
		case map[string]any:
			if module, ok := v["module"].(string); ok {
				addModule(set, module)
			}

			if group, ok := v["group"].(string); ok {
				name, _ := v["name"].(string)
				addCoordinate(set, group, name)
			}
		}
	}
}

// addModule indexes a "group:artifact[:version]" notation.
func addModule(set *Set, module string) {
	group, rest, _ := strings.Cut(module, ":")
	artifact, _, _ := strings.Cut(rest, ":")
	addCoordinate(set, group, artifact)
}

// addCoordinate indexes the group and, when the artifact id starts with the
// last group segment, the package root spelled by the artifact:
// org.jetbrains.kotlinx:kotlinx-coroutines-core publishes kotlinx.coroutines.
func addCoordinate(set *Set, group, artifact string) {
	addGroup(set, group)

	group = strings.TrimSpace(group)
	last := group[strings.LastIndex(group, ".")+1:]

	tokens := strings.Split(strings.TrimSpace(artifact), "-")
	if len(tokens) < 2 || last == "" || tokens[0] != last || tokens[1] == "" {
		return
	}

	set.add(tokens[0] + "." + tokens[1])
}

// addGroup indexes a Maven group id by itself and by its first two and three
// segments, which is how import packages are matched back to artifacts.
func addGroup(set *Set, group string) {
	group = strings.TrimSpace(group)
	if group == "" || strings.ContainsAny(group, "$/ ") {
		return
	}

	set.add(group)

	segments := strings.Split(group, ".")
	for _, n := range []int{2, 3} {
		if len(segments) >= n {
			set.add(strings.Join(segments[:n], "."))
		}
	}
}

// HasGroupPrefix reports whether the first two or three segments of an
// import path match a declared group.
func (s *Set) HasGroupPrefix(importPath string) bool {
	if s == nil {
		return false
	}

	segments := strings.Split(importPath, ".")
	for _, n := range []int{3, 2} {
		if len(segments) >= n && s.Has(strings.Join(segments[:n], ".")) {
			return true
		}
	}

	return false
}
