package stdlib

// nodeBuiltins are Node.js core modules, matched on the top path segment.
var nodeBuiltins = []string{
	"assert", "async_hooks", "buffer", "child_process", "cluster", "console",
	"constants", "crypto", "dgram", "diagnostics_channel", "dns", "domain",
	"events", "fs", "http", "http2", "https", "inspector", "module", "net",
	"os", "path", "perf_hooks", "process", "punycode", "querystring",
	"readline", "repl", "stream", "string_decoder", "sys", "timers", "tls",
	"trace_events", "tty", "url", "util", "v8", "vm", "wasi",
	"worker_threads", "zlib",
}

// pythonModules are the top-level modules of the CPython standard library.
var pythonModules = []string{
	"__future__", "__main__", "_thread", "abc", "aifc", "argparse", "array",
	"ast", "asynchat", "asyncio", "asyncore", "atexit", "audioop", "base64",
	"bdb", "binascii", "bisect", "builtins", "bz2", "calendar", "cgi",
	"cgitb", "chunk", "cmath", "cmd", "code", "codecs", "codeop",
	"collections", "colorsys", "compileall", "concurrent", "configparser",
	"contextlib", "contextvars", "copy", "copyreg", "cProfile", "crypt",
	"csv", "ctypes", "curses", "dataclasses", "datetime", "dbm", "decimal",
	"difflib", "dis", "distutils", "doctest", "email", "encodings",
	"ensurepip", "enum", "errno", "faulthandler", "fcntl", "filecmp",
	"fileinput", "fnmatch", "fractions", "ftplib", "functools", "gc",
	"getopt", "getpass", "gettext", "glob", "graphlib", "grp", "gzip",
	"hashlib", "heapq", "hmac", "html", "http", "idlelib", "imaplib",
	"imghdr", "imp", "importlib", "inspect", "io", "ipaddress", "itertools",
	"json", "keyword", "lib2to3", "linecache", "locale", "logging", "lzma",
	"mailbox", "mailcap", "marshal", "math", "mimetypes", "mmap",
	"modulefinder", "msilib", "msvcrt", "multiprocessing", "netrc", "nis",
	"nntplib", "ntpath", "numbers", "operator", "optparse", "os",
	"ossaudiodev", "pathlib", "pdb", "pickle", "pickletools", "pipes",
	"pkgutil", "platform", "plistlib", "poplib", "posix", "posixpath",
	"pprint", "profile", "pstats", "pty", "pwd", "py_compile", "pyclbr",
	"pydoc", "queue", "quopri", "random", "re", "readline", "reprlib",
	"resource", "rlcompleter", "runpy", "sched", "secrets", "select",
	"selectors", "shelve", "shlex", "shutil", "signal", "site", "smtpd",
	"smtplib", "sndhdr", "socket", "socketserver", "spwd", "sqlite3",
	"sre_compile", "sre_constants", "sre_parse", "ssl", "stat",
	"statistics", "string", "stringprep", "struct", "subprocess", "sunau",
	"symtable", "sys", "sysconfig", "syslog", "tabnanny", "tarfile",
	"telnetlib", "tempfile", "termios", "textwrap", "threading", "time",
	"timeit", "tkinter", "token", "tokenize", "tomllib", "trace",
	"traceback", "tracemalloc", "tty", "turtle", "turtledemo", "types",
	"typing", "unicodedata", "unittest", "urllib", "uu", "uuid", "venv",
	"warnings", "wave", "weakref", "webbrowser", "winreg", "winsound",
	"wsgiref", "xdrlib", "xml", "xmlrpc", "zipapp", "zipfile", "zipimport",
	"zlib", "zoneinfo",
}

// goPackages are the hierarchical Go standard library import paths.
// Single-segment paths ("fmt", "os") are accepted without a lookup.
var goPackages = []string{
	"archive/tar", "archive/zip",
	"compress/bzip2", "compress/flate", "compress/gzip", "compress/lzw", "compress/zlib",
	"container/heap", "container/list", "container/ring",
	"crypto/aes", "crypto/cipher", "crypto/des", "crypto/dsa", "crypto/ecdh",
	"crypto/ecdsa", "crypto/ed25519", "crypto/elliptic", "crypto/fips140",
	"crypto/hkdf", "crypto/hmac", "crypto/md5", "crypto/mlkem", "crypto/pbkdf2",
	"crypto/rand", "crypto/rc4", "crypto/rsa", "crypto/sha1", "crypto/sha256",
	"crypto/sha3", "crypto/sha512", "crypto/subtle", "crypto/tls",
	"crypto/x509", "crypto/x509/pkix",
	"database/sql", "database/sql/driver",
	"debug/buildinfo", "debug/dwarf", "debug/elf", "debug/gosym",
	"debug/macho", "debug/pe", "debug/plan9obj",
	"encoding/ascii85", "encoding/asn1", "encoding/base32", "encoding/base64",
	"encoding/binary", "encoding/csv", "encoding/gob", "encoding/hex",
	"encoding/json", "encoding/pem", "encoding/xml",
	"go/ast", "go/build", "go/build/constraint", "go/constant", "go/doc",
	"go/doc/comment", "go/format", "go/importer", "go/parser", "go/printer",
	"go/scanner", "go/token", "go/types", "go/version",
	"hash/adler32", "hash/crc32", "hash/crc64", "hash/fnv", "hash/maphash",
	"html/template",
	"image/color", "image/color/palette", "image/draw", "image/gif",
	"image/jpeg", "image/png",
	"index/suffixarray",
	"io/fs", "io/ioutil",
	"log/slog", "log/syslog",
	"math/big", "math/bits", "math/cmplx", "math/rand", "math/rand/v2",
	"mime/multipart", "mime/quotedprintable",
	"net/http", "net/http/cgi", "net/http/cookiejar", "net/http/fcgi",
	"net/http/httptest", "net/http/httptrace", "net/http/httputil",
	"net/http/pprof", "net/mail", "net/netip", "net/rpc", "net/rpc/jsonrpc",
	"net/smtp", "net/textproto", "net/url",
	"os/exec", "os/signal", "os/user",
	"path/filepath",
	"regexp/syntax",
	"runtime/cgo", "runtime/coverage", "runtime/debug", "runtime/metrics",
	"runtime/pprof", "runtime/race", "runtime/trace",
	"sync/atomic",
	"testing/fstest", "testing/iotest", "testing/quick", "testing/slogtest",
	"testing/synctest",
	"text/scanner", "text/tabwriter", "text/template", "text/template/parse",
	"unicode/utf16", "unicode/utf8",
}

// rubyLibraries are Ruby standard libraries and default gems.
var rubyLibraries = []string{
	"abbrev", "base64", "benchmark", "bigdecimal", "bundler", "cgi", "coverage",
	"csv", "date", "debug", "delegate", "did_you_mean", "digest", "drb",
	"English", "erb", "etc", "expect", "fcntl", "fiber", "fiddle",
	"fileutils", "find", "forwardable", "getoptlong", "io", "ipaddr", "irb",
	"json", "logger", "matrix", "minitest", "monitor", "mutex_m", "net",
	"nkf", "objspace", "observer", "open-uri", "open3", "openssl",
	"optparse", "ostruct", "pathname", "pp", "prettyprint", "prime", "pstore",
	"psych", "pty", "racc", "rake", "rbconfig", "rdoc", "readline", "reline",
	"resolv", "rinda", "ripper", "rubygems", "securerandom", "set",
	"shellwords", "singleton", "socket", "stringio", "strscan", "syslog",
	"tempfile", "test", "time", "timeout", "tmpdir", "tsort", "un", "uri",
	"weakref", "webrick", "win32ole", "yaml", "zlib",
}

// dotnetRoots are namespace roots provided by the .NET runtime and SDKs.
var dotnetRoots = []string{"System", "Microsoft", "Windows"}

// rustCrates are crates every Rust toolchain provides.
var rustCrates = []string{"std", "core", "alloc", "proc_macro", "test"}

// javaRoots are single-segment package roots of the JDK.
var javaRoots = []string{"java", "javax", "jdk", "sun"}

// javaQualifiedRoots are JDK package roots that need more than one segment.
var javaQualifiedRoots = []string{"com.sun", "org.w3c.dom", "org.xml.sax", "org.ietf.jgss", "org.omg"}

// kotlinRoots extend the JDK roots for Kotlin sources.
var kotlinRoots = []string{"kotlin", "android"}
