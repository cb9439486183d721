package entity

func ref(name string, cp rune) Reference {
	return Reference{Name: name, Codepoint: cp, Terminated: true}
}

// references is the full table. Order matters only for Name: the first entry
// declared for a codepoint becomes its canonical name.
var references = []Reference{
	// XML predefined entities.
	ref("amp", '&'), ref("lt", '<'), ref("gt", '>'), ref("quot", '"'), ref("apos", '\''),

	// ASCII punctuation.
	ref("Tab", 0x09), ref("NewLine", 0x0A),
	ref("excl", '!'), ref("num", '#'), ref("dollar", '$'), ref("percnt", '%'),
	ref("lpar", '('), ref("rpar", ')'), ref("ast", '*'), ref("plus", '+'),
	ref("comma", ','), ref("period", '.'), ref("sol", '/'), ref("colon", ':'),
	ref("semi", ';'), ref("equals", '='), ref("quest", '?'), ref("commat", '@'),
	ref("lsqb", '['), ref("bsol", '\\'), ref("rsqb", ']'), ref("Hat", '^'),
	ref("lowbar", '_'), ref("grave", '`'), ref("lcub", '{'), ref("verbar", '|'),
	ref("rcub", '}'),

	// Latin-1 supplement.
	ref("nbsp", 0xA0), ref("iexcl", 0xA1), ref("cent", 0xA2), ref("pound", 0xA3),
	ref("curren", 0xA4), ref("yen", 0xA5), ref("brvbar", 0xA6), ref("sect", 0xA7),
	ref("uml", 0xA8), ref("copy", 0xA9), ref("ordf", 0xAA), ref("laquo", 0xAB),
	ref("not", 0xAC), ref("shy", 0xAD), ref("reg", 0xAE), ref("macr", 0xAF),
	ref("deg", 0xB0), ref("plusmn", 0xB1), ref("sup2", 0xB2), ref("sup3", 0xB3),
	ref("acute", 0xB4), ref("micro", 0xB5), ref("para", 0xB6), ref("middot", 0xB7),
	ref("cedil", 0xB8), ref("sup1", 0xB9), ref("ordm", 0xBA), ref("raquo", 0xBB),
	ref("frac14", 0xBC), ref("frac12", 0xBD), ref("frac34", 0xBE), ref("iquest", 0xBF),
	ref("Agrave", 0xC0), ref("Aacute", 0xC1), ref("Acirc", 0xC2), ref("Atilde", 0xC3),
	ref("Auml", 0xC4), ref("Aring", 0xC5), ref("AElig", 0xC6), ref("Ccedil", 0xC7),
	ref("Egrave", 0xC8), ref("Eacute", 0xC9), ref("Ecirc", 0xCA), ref("Euml", 0xCB),
	ref("Igrave", 0xCC), ref("Iacute", 0xCD), ref("Icirc", 0xCE), ref("Iuml", 0xCF),
	ref("ETH", 0xD0), ref("Ntilde", 0xD1), ref("Ograve", 0xD2), ref("Oacute", 0xD3),
	ref("Ocirc", 0xD4), ref("Otilde", 0xD5), ref("Ouml", 0xD6), ref("times", 0xD7),
	ref("Oslash", 0xD8), ref("Ugrave", 0xD9), ref("Uacute", 0xDA), ref("Ucirc", 0xDB),
	ref("Uuml", 0xDC), ref("Yacute", 0xDD), ref("THORN", 0xDE), ref("szlig", 0xDF),
	ref("agrave", 0xE0), ref("aacute", 0xE1), ref("acirc", 0xE2), ref("atilde", 0xE3),
	ref("auml", 0xE4), ref("aring", 0xE5), ref("aelig", 0xE6), ref("ccedil", 0xE7),
	ref("egrave", 0xE8), ref("eacute", 0xE9), ref("ecirc", 0xEA), ref("euml", 0xEB),
	ref("igrave", 0xEC), ref("iacute", 0xED), ref("icirc", 0xEE), ref("iuml", 0xEF),
	ref("eth", 0xF0), ref("ntilde", 0xF1), ref("ograve", 0xF2), ref("oacute", 0xF3),
	ref("ocirc", 0xF4), ref("otilde", 0xF5), ref("ouml", 0xF6), ref("divide", 0xF7),
	ref("oslash", 0xF8), ref("ugrave", 0xF9), ref("uacute", 0xFA), ref("ucirc", 0xFB),
	ref("uuml", 0xFC), ref("yacute", 0xFD), ref("thorn", 0xFE), ref("yuml", 0xFF),

	// Latin extended and spacing modifiers.
	ref("OElig", 0x152), ref("oelig", 0x153), ref("Scaron", 0x160), ref("scaron", 0x161),
	ref("Yuml", 0x178), ref("fnof", 0x192), ref("circ", 0x2C6), ref("tilde", 0x2DC),

	// Greek.
	ref("Alpha", 0x391), ref("Beta", 0x392), ref("Gamma", 0x393), ref("Delta", 0x394),
	ref("Epsilon", 0x395), ref("Zeta", 0x396), ref("Eta", 0x397), ref("Theta", 0x398),
	ref("Iota", 0x399), ref("Kappa", 0x39A), ref("Lambda", 0x39B), ref("Mu", 0x39C),
	ref("Nu", 0x39D), ref("Xi", 0x39E), ref("Omicron", 0x39F), ref("Pi", 0x3A0),
	ref("Rho", 0x3A1), ref("Sigma", 0x3A3), ref("Tau", 0x3A4), ref("Upsilon", 0x3A5),
	ref("Phi", 0x3A6), ref("Chi", 0x3A7), ref("Psi", 0x3A8), ref("Omega", 0x3A9),
	ref("alpha", 0x3B1), ref("beta", 0x3B2), ref("gamma", 0x3B3), ref("delta", 0x3B4),
	ref("epsilon", 0x3B5), ref("zeta", 0x3B6), ref("eta", 0x3B7), ref("theta", 0x3B8),
	ref("iota", 0x3B9), ref("kappa", 0x3BA), ref("lambda", 0x3BB), ref("mu", 0x3BC),
	ref("nu", 0x3BD), ref("xi", 0x3BE), ref("omicron", 0x3BF), ref("pi", 0x3C0),
	ref("rho", 0x3C1), ref("sigmaf", 0x3C2), ref("sigma", 0x3C3), ref("tau", 0x3C4),
	ref("upsilon", 0x3C5), ref("phi", 0x3C6), ref("chi", 0x3C7), ref("psi", 0x3C8),
	ref("omega", 0x3C9), ref("thetasym", 0x3D1), ref("upsih", 0x3D2), ref("piv", 0x3D6),

	// General punctuation.
	ref("ensp", 0x2002), ref("emsp", 0x2003), ref("thinsp", 0x2009), ref("zwnj", 0x200C),
	ref("zwj", 0x200D), ref("lrm", 0x200E), ref("rlm", 0x200F), ref("ndash", 0x2013),
	ref("mdash", 0x2014), ref("lsquo", 0x2018), ref("rsquo", 0x2019), ref("sbquo", 0x201A),
	ref("ldquo", 0x201C), ref("rdquo", 0x201D), ref("bdquo", 0x201E), ref("dagger", 0x2020),
	ref("Dagger", 0x2021), ref("bull", 0x2022), ref("hellip", 0x2026), ref("permil", 0x2030),
	ref("prime", 0x2032), ref("Prime", 0x2033), ref("lsaquo", 0x2039), ref("rsaquo", 0x203A),
	ref("oline", 0x203E), ref("frasl", 0x2044), ref("euro", 0x20AC),

	// Letterlike symbols.
	ref("image", 0x2111), ref("weierp", 0x2118), ref("real", 0x211C), ref("trade", 0x2122),
	ref("alefsym", 0x2135),

	// Arrows.
	ref("larr", 0x2190), ref("uarr", 0x2191), ref("rarr", 0x2192), ref("darr", 0x2193),
	ref("harr", 0x2194), ref("crarr", 0x21B5), ref("lArr", 0x21D0), ref("uArr", 0x21D1),
	ref("rArr", 0x21D2), ref("dArr", 0x21D3), ref("hArr", 0x21D4),

	// Mathematical operators.
	ref("forall", 0x2200), ref("part", 0x2202), ref("exist", 0x2203), ref("empty", 0x2205),
	ref("nabla", 0x2207), ref("isin", 0x2208), ref("notin", 0x2209), ref("ni", 0x220B),
	ref("prod", 0x220F), ref("sum", 0x2211), ref("minus", 0x2212), ref("setminus", 0x2216),
	ref("lowast", 0x2217), ref("compfn", 0x2218), ref("radic", 0x221A), ref("prop", 0x221D),
	ref("infin", 0x221E), ref("ang", 0x2220), ref("and", 0x2227), ref("or", 0x2228),
	ref("cap", 0x2229), ref("cup", 0x222A), ref("int", 0x222B), ref("there4", 0x2234),
	ref("sim", 0x223C), ref("cong", 0x2245), ref("asymp", 0x2248), ref("ne", 0x2260),
	ref("equiv", 0x2261), ref("le", 0x2264), ref("ge", 0x2265), ref("sub", 0x2282),
	ref("sup", 0x2283), ref("nsub", 0x2284), ref("sube", 0x2286), ref("supe", 0x2287),
	ref("oplus", 0x2295), ref("otimes", 0x2297), ref("perp", 0x22A5), ref("sdot", 0x22C5),

	// Technical and miscellaneous.
	ref("lceil", 0x2308), ref("rceil", 0x2309), ref("lfloor", 0x230A), ref("rfloor", 0x230B),
	ref("lang", 0x27E8), ref("rang", 0x27E9), ref("loz", 0x25CA), ref("starf", 0x2605),
	ref("star", 0x2606), ref("spades", 0x2660), ref("clubs", 0x2663), ref("hearts", 0x2665),
	ref("diams", 0x2666), ref("check", 0x2713), ref("cross", 0x2717),

	// Upper-case aliases carried over from HTML5. Mixed case ("Amp") is not
	// a reference.
	ref("AMP", '&'), ref("LT", '<'), ref("GT", '>'), ref("QUOT", '"'),
	ref("COPY", 0xA9), ref("REG", 0xAE), ref("TRADE", 0x2122),
}
