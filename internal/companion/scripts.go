package companion

// In-page extraction scripts. Each returns plain JSON-serializable data so
// the Go side can run its matching logic on testable structures instead of
// holding DOM node references across CDP calls.

// loadingVisibleJS reports whether the catalog search spinner is rendered.
const loadingVisibleJS = `(() => {
	const el = document.querySelector('div.loading');
	return el !== null && el.offsetParent !== null;
})()`

// rowsJS captures every result row's cell text plus its smart-link href.
const rowsJS = `Array.from(document.querySelectorAll('table tbody tr')).map(tr => ({
	cells: Array.from(tr.querySelectorAll('td')).map(td => (td.innerText || '').trim()),
	link: (a => a ? a.href : '')(tr.querySelector('a[href*="/catalog/platform/"]')),
}))`

// platformsJS captures each smart-link entry's onclick payload and logo
// class list.
const platformsJS = `Array.from(document.querySelectorAll('#platList li a')).map(a => ({
	onclick: a.getAttribute('onclick') || '',
	logo: (s => s ? s.className : '')(a.querySelector('span[class*=logo_]')),
}))`

// coverJS resolves the detail page's cover art URL: the header element's
// background image when present, otherwise the largest rendered image whose
// natural area is big enough to be artwork rather than an icon.
const coverJS = `(() => {
	const hd = document.querySelector('div.plat_hd');
	if (hd) {
		const bg = getComputedStyle(hd).backgroundImage || '';
		const m = bg.match(/url\(["']?([^"')]+)["']?\)/);
		if (m) return m[1];
	}
	let best = '';
	let bestArea = 10000;
	for (const img of document.querySelectorAll('img')) {
		const area = (img.naturalWidth || 0) * (img.naturalHeight || 0);
		if (area > bestArea && img.src) {
			best = img.src;
			bestArea = area;
		}
	}
	return best;
})()`
