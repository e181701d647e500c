// Package esbuildhost registers module-transform plugins with esbuild.
package esbuildhost

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"git.home.luguber.info/inful/rawassets/internal/plugin"
	"git.home.luguber.info/inful/rawassets/internal/rawasset"
)

// Filter returns the esbuild OnLoad filter matching any of exts at the end of a path.
func Filter(exts rawasset.Extensions) string {
	list := exts.List()
	quoted := make([]string, len(list))
	for i, ext := range list {
		quoted[i] = regexp.QuoteMeta(ext)
	}
	return "(?:" + strings.Join(quoted, "|") + ")$"
}

// Plugin adapts p to esbuild. Files in the "file" namespace whose path ends in
// one of exts are handed to p; a Transformed result becomes the module's JS
// source and NoTransform lets esbuild fall through to its next handler.
// Errors are returned to esbuild, which fails the build.
//
// esbuild passes the path without any ?query or #hash suffix, so ids seen by
// p are plain filesystem paths.
func Plugin(p plugin.Plugin, exts rawasset.Extensions) api.Plugin {
	filter := Filter(exts)
	return api.Plugin{
		Name: p.Name(),
		Setup: func(build api.PluginBuild) {
			build.OnLoad(api.OnLoadOptions{Filter: filter, Namespace: "file"},
				func(args api.OnLoadArgs) (api.OnLoadResult, error) {
					res, err := p.Transform(nil, args.Path)
					if err != nil {
						return api.OnLoadResult{}, err
					}
					out, ok := plugin.IsTransformed(res)
					if !ok {
						return api.OnLoadResult{}, nil
					}
					code := out.Code
					return api.OnLoadResult{
						Contents:   &code,
						Loader:     api.LoaderJS,
						ResolveDir: filepath.Dir(args.Path),
					}, nil
				})
		},
	}
}
