package emitjs

// RuntimeHelpersJS defines the `__tjs` monadic-error helpers spec §6 names
// for JS embedders (isError/error/typeOf/wrap/validateArgs), plus
// typeError used by the inline validation prologue Emit generates. Hosts
// that run emitted code outside this module's own VM (e.g. in Node.js or
// a browser) must prepend this snippet once per bundle.
const RuntimeHelpersJS = `
var __tjs = (function () {
  function isError(v) {
    return v !== null && typeof v === 'object' && v.$error === true;
  }
  function error(message, details) {
    var e = { $error: true, message: message };
    if (details !== undefined) e.details = details;
    return e;
  }
  function typeError(path, expectedKind, actualValue) {
    return error(
      'Expected ' + expectedKind + ' for ' + path + ', got ' + typeOf(actualValue),
      { path: path, expectedKind: expectedKind }
    );
  }
  function typeOf(v) {
    if (v === null) return 'null';
    if (Array.isArray(v)) return 'array';
    var t = typeof v;
    if (t === 'number') return Number.isInteger(v) ? 'integer' : 'number';
    return t;
  }
  function wrap(fn, meta) {
    var wrapped = function () {
      for (var i = 0; i < arguments.length; i++) {
        if (isError(arguments[i])) return arguments[i];
      }
      return fn.apply(this, arguments);
    };
    wrapped.__tjs = meta;
    return wrapped;
  }
  function validateArgs(args, meta) {
    if (!meta || !meta.params) return null;
    var names = Object.keys(meta.params);
    for (var i = 0; i < names.length; i++) {
      var name = names[i];
      var spec = meta.params[name];
      var value = args[i];
      if (spec.required && value === undefined) {
        return error("Missing required parameter '" + name + "'");
      }
      if (value !== undefined && spec.type && spec.type.kind !== 'any' && typeOf(value) !== spec.type.kind) {
        return typeError(name, spec.type.kind, value);
      }
    }
    return null;
  }
  return {
    isError: isError,
    error: error,
    typeError: typeError,
    typeOf: typeOf,
    wrap: wrap,
    validateArgs: validateArgs,
  };
})();
`
