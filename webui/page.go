package webui

// The whole front end is a single page; keeping it as a constant avoids
// shipping assets next to the binary.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Transparent Background</title>
<style>
  body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; color: #222; }
  h1 { font-size: 1.4rem; }
  fieldset { border: 1px solid #ccc; border-radius: 6px; margin-bottom: 1rem; }
  label { display: inline-block; margin: 0.3rem 0.8rem 0.3rem 0; }
  img { max-width: 100%; background:
    repeating-conic-gradient(#eee 0% 25%, #fff 0% 50%) 0 0 / 20px 20px; }
  #error { display: none; background: #fdd; border: 1px solid #c66; padding: 0.6rem; border-radius: 4px; }
  #health { font-size: 0.85rem; color: #666; }
  button { padding: 0.5rem 1.2rem; }
  button:disabled { opacity: 0.5; }
</style>
</head>
<body>
<h1>Transparent Background</h1>
<p id="health">checking backend&hellip;</p>
<p id="error"></p>

<fieldset>
  <legend>Image</legend>
  <input type="file" id="file" accept="image/*">
</fieldset>

<fieldset>
  <legend>Options</legend>
  <label>mode
    <select id="mode">
      <option value="fast">fast</option>
      <option value="base">base</option>
      <option value="base-nightly">base-nightly</option>
    </select>
  </label>
  <label>resize
    <select id="resize">
      <option value="static">static</option>
      <option value="dynamic">dynamic</option>
    </select>
  </label>
  <label><input type="checkbox" id="crop"> crop</label>
  <label>margin <input type="number" id="crop_margin" min="0" max="200" style="width:4.5rem"></label>
  <label><input type="checkbox" id="reverse"> reverse</label>
</fieldset>

<button id="submit">Remove background</button>

<h2 id="preview-title" style="display:none">Preview</h2>
<img id="preview" alt="">
<h2 id="result-title" style="display:none">Result</h2>
<img id="result" alt="">

<script>
(function () {
  "use strict";

  var busy = false;

  function $(id) { return document.getElementById(id); }

  function showError(msg) {
    $("error").textContent = msg;
    $("error").style.display = msg ? "block" : "none";
  }

  function prefs() {
    return {
      mode: $("mode").value,
      resize: $("resize").value,
      outputType: "rgba",
      crop: $("crop").checked,
      cropMargin: parseInt($("crop_margin").value, 10) || 0,
      reverse: $("reverse").checked
    };
  }

  function loadPrefs() {
    fetch("/api/preferences").then(function (r) { return r.json(); }).then(function (p) {
      $("mode").value = p.mode;
      $("resize").value = p.resize;
      $("crop").checked = p.crop;
      $("crop_margin").value = p.cropMargin;
      $("reverse").checked = p.reverse;
    });
  }

  function savePrefs() {
    fetch("/api/preferences", {
      method: "PUT",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(prefs())
    });
  }

  function refreshHealth() {
    fetch("/api/health").then(function (r) { return r.json(); }).then(function (h) {
      $("health").textContent = h.healthy ? "backend: available" : "backend: unavailable";
    });
  }

  ["mode", "resize", "crop", "crop_margin", "reverse"].forEach(function (id) {
    $(id).addEventListener("change", savePrefs);
  });

  $("file").addEventListener("change", function () {
    showError("");
    $("result-title").style.display = "none";
    $("result").removeAttribute("src");
    var f = this.files[0];
    if (!f) {
      $("preview-title").style.display = "none";
      $("preview").removeAttribute("src");
      return;
    }
    var url = URL.createObjectURL(f);
    $("preview").onload = function () { URL.revokeObjectURL(url); };
    $("preview").src = url;
    $("preview-title").style.display = "block";
  });

  $("submit").addEventListener("click", function () {
    var f = $("file").files[0];
    if (!f || busy) { return; }

    busy = true;
    $("submit").disabled = true;
    showError("");

    var form = new FormData();
    form.append("file", f, f.name);
    var p = prefs();
    form.append("mode", p.mode);
    form.append("resize", p.resize);
    form.append("crop", String(p.crop));
    form.append("crop_margin", String(p.cropMargin));
    form.append("reverse", String(p.reverse));

    fetch("/api/remove-background", { method: "POST", body: form })
      .then(function (r) {
        if (!r.ok) {
          return r.json().then(function (e) {
            throw new Error((e.message && e.message.message) || e.message || ("request failed with status " + r.status));
          });
        }
        return r.blob();
      })
      .then(function (blob) {
        $("result").src = URL.createObjectURL(blob);
        $("result-title").style.display = "block";
      })
      .catch(function (e) { showError(e.message); })
      .then(function () {
        busy = false;
        $("submit").disabled = false;
      });
  });

  loadPrefs();
  refreshHealth();
  setInterval(refreshHealth, 30000);
})();
</script>
</body>
</html>
`
