// Package rawasset inlines binary assets into the bundle as byte buffers.
//
// A Transformer recognizes module requests whose identifier ends in one of a
// fixed set of extensions (".ttf" by default), reads the file once, and
// replaces the module with
//
//	export default {"type":"Buffer","data":[0,1,2]}
//
// so the asset is consumed as an in-memory value instead of going through the
// host's asset-URL pipeline. Anything else is passed through untouched and
// without I/O.
package rawasset
