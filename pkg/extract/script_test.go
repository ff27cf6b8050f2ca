package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/importcheck/pkg/ecosystem"
	"github.com/Sumatoshi-tech/importcheck/pkg/extract"
)

func TestScript_TypeScriptForms(t *testing.T) {
	t.Parallel()

	src := `import React from "react";
import type { Props } from './types';
import './side-effect.css';
// import fake from "commented-out";
/* import other from "block-comment"; */
export { helper } from "@/utils/helper";
export * from '../shared';
import fs = require("fs");

const label = "import notAnImport from 'string-literal'";

async function load(name: string) {
  const lazy = await import("./lazy");
  const cjs = require(` + "`lodash`" + `);
  const dyn = require(` + "`./locale/${name}`" + `);
  const computed = import(name);
  return [lazy, cjs, dyn, computed];
}
`

	got, refs := collect(t, ecosystem.JavaScript, "src/app.ts", src)

	assert.Equal(t, []found{
		{1, "react"},
		{2, "./types"},
		{3, "./side-effect.css"},
		{6, "@/utils/helper"},
		{7, "../shared"},
		{8, "fs"},
		{13, "./lazy"},
		{14, "lodash"},
	}, got)

	assert.False(t, refs[0].Dynamic)
	assert.True(t, refs[6].Dynamic)
}

func TestScript_JSXAndCommonJS(t *testing.T) {
	t.Parallel()

	src := `const path = require('path');
const { render } = require("react-dom");

export default function App() {
  return <div title="import x from 'nope'">{require("./icon.svg")}</div>;
}
`

	got, _ := collect(t, ecosystem.JavaScript, "src/App.jsx", src)

	assert.Equal(t, []found{
		{1, "path"},
		{2, "react-dom"},
		{5, "./icon.svg"},
	}, got)
}

func TestScript_TSX(t *testing.T) {
	t.Parallel()

	src := `import { useState } from 'react';
import Button from '@/components/Button';

export const Page = () => <Button onClick={() => import('./modal')} />;
`

	got, _ := collect(t, ecosystem.JavaScript, "src/Page.tsx", src)

	assert.Equal(t, []found{
		{1, "react"},
		{2, "@/components/Button"},
		{4, "./modal"},
	}, got)
}

func TestScript_MultiLineImportReportsStatementLine(t *testing.T) {
	t.Parallel()

	src := "\n\nimport {\n  a,\n  b,\n} from 'multi-line';\n"

	got, _ := collect(t, ecosystem.JavaScript, "index.mjs", src)

	assert.Equal(t, []found{{3, "multi-line"}}, got)
}

func TestScript_StopsEarly(t *testing.T) {
	t.Parallel()

	ex := extract.NewScriptExtractor()

	count := 0
	for range ex.Extract("a.js", []byte("import 'a';\nimport 'b';\n")) {
		count++

		break
	}

	assert.Equal(t, 1, count)
}
